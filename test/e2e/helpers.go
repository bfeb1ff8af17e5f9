package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelper provides utilities for E2E tests
type TestHelper struct {
	t       *testing.T
	binPath string
}

// NewTestHelper builds the binary and skips when git is unavailable.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	return &TestHelper{
		t:       t,
		binPath: buildBinary(t),
	}
}

// buildBinary 构建 codeup 可执行文件并返回路径。
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "codeup-bin")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/penwyp/codeup")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v, output: %s", err, string(out))
	}
	return binPath
}

// RepoConfig holds configuration for creating a test repository
type RepoConfig struct {
	UserEmail     string
	UserName      string
	InitialCommit bool
	Remotes       map[string]string
}

// DefaultRepoConfig returns a default repo configuration
func DefaultRepoConfig() RepoConfig {
	return RepoConfig{
		UserEmail:     "test@example.com",
		UserName:      "Test User",
		InitialCommit: true,
		Remotes:       map[string]string{},
	}
}

// CreateGitRepo creates a repository on branch master
func (h *TestHelper) CreateGitRepo(config RepoConfig) string {
	dir := h.t.TempDir()

	h.runGit(dir, "init", "-b", "master")
	h.runGit(dir, "config", "user.email", config.UserEmail)
	h.runGit(dir, "config", "user.name", config.UserName)

	if config.InitialCommit {
		h.AddFile(dir, "README.md", "# Test Repository\n")
		h.runGit(dir, "add", "README.md")
		h.runGit(dir, "commit", "-m", "chore: initial commit")
	}

	for name, url := range config.Remotes {
		h.runGit(dir, "remote", "add", name, url)
	}
	return dir
}

// CreateBareRemote creates a bare repository standing in for the hosting target
func (h *TestHelper) CreateBareRemote() string {
	dir := filepath.Join(h.t.TempDir(), "my-app.git")
	h.runGit(h.t.TempDir(), "init", "--bare", "-b", "master", dir)
	return dir
}

// WriteConfig writes codeup.yaml into dir
func (h *TestHelper) WriteConfig(dir, content string) {
	h.AddFile(dir, "codeup.yaml", content)
}

// runGit executes a git command in the specified directory
func (h *TestHelper) runGit(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		h.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// RunCodeup executes codeup with the given arguments and environment
func (h *TestHelper) RunCodeup(dir string, args []string, env map[string]string) (string, error) {
	cmd := exec.Command(h.binPath, args...)
	cmd.Dir = dir

	cmdEnv := os.Environ()
	for k, v := range env {
		cmdEnv = append(cmdEnv, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = cmdEnv

	out, err := cmd.CombinedOutput()
	return string(out), err
}

// AddFile creates a file in the repository
func (h *TestHelper) AddFile(repoDir, filename, content string) {
	filePath := filepath.Join(repoDir, filename)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(h.t, os.WriteFile(filePath, []byte(content), 0644))
}

// GetLastCommitMessage returns the subject of the last commit on ref
func (h *TestHelper) GetLastCommitMessage(repoDir, ref string) string {
	return h.runGit(repoDir, "log", "-1", "--pretty=%s", ref)
}

// HasRef reports whether ref resolves in repoDir
func (h *TestHelper) HasRef(repoDir, ref string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", ref)
	cmd.Dir = repoDir
	return cmd.Run() == nil
}

// IsClean reports whether the working copy has no pending changes
func (h *TestHelper) IsClean(repoDir string) bool {
	return h.runGit(repoDir, "status", "--porcelain") == ""
}

// AssertExitCode checks the exit code of an exec.ExitError
func (h *TestHelper) AssertExitCode(err error, expectedCode int) {
	exitErr, ok := err.(*exec.ExitError)
	require.True(h.t, ok, "expected exec.ExitError, got %T", err)
	require.Equal(h.t, expectedCode, exitErr.ExitCode())
}
