package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunner 用于模拟git命令执行
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	arguments := m.Called(ctx, command, args)
	return arguments.String(0), arguments.Error(1)
}

func (m *MockRunner) Stream(ctx context.Context, w io.Writer, command string, args ...string) error {
	arguments := m.Called(ctx, w, command, args)
	if out := arguments.String(0); out != "" {
		_, _ = io.WriteString(w, out)
	}
	return arguments.Error(1)
}

func TestRemotes(t *testing.T) {
	tests := []struct {
		name       string
		mockOutput string
		mockError  error
		expected   []Remote
		expectErr  bool
	}{
		{
			name: "Single remote",
			mockOutput: `my-app	my-app@deploy.eu2.frbit.com:my-app.git (fetch)
my-app	my-app@deploy.eu2.frbit.com:my-app.git (push)`,
			expected: []Remote{
				{
					Name:     "my-app",
					FetchURL: "my-app@deploy.eu2.frbit.com:my-app.git",
					PushURL:  "my-app@deploy.eu2.frbit.com:my-app.git",
				},
			},
		},
		{
			name: "Multiple remotes keep git order",
			mockOutput: `upstream	https://github.com/upstream/repo.git (fetch)
upstream	https://github.com/upstream/repo.git (push)
origin	https://github.com/owner/repo.git (fetch)
origin	https://github.com/owner/repo.git (push)`,
			expected: []Remote{
				{
					Name:     "upstream",
					FetchURL: "https://github.com/upstream/repo.git",
					PushURL:  "https://github.com/upstream/repo.git",
				},
				{
					Name:     "origin",
					FetchURL: "https://github.com/owner/repo.git",
					PushURL:  "https://github.com/owner/repo.git",
				},
			},
		},
		{
			name: "Different fetch and push URLs",
			mockOutput: `origin	https://github.com/owner/repo.git (fetch)
origin	git@github.com:owner/repo.git (push)`,
			expected: []Remote{
				{
					Name:     "origin",
					FetchURL: "https://github.com/owner/repo.git",
					PushURL:  "git@github.com:owner/repo.git",
				},
			},
		},
		{
			name:       "No remotes",
			mockOutput: "",
			expected:   []Remote{},
		},
		{
			name:      "Git command error",
			mockError: assert.AnError,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRunner := new(MockRunner)
			mockRunner.On("Run", mock.Anything, "git", []string{"remote", "-v"}).
				Return(tt.mockOutput, tt.mockError)

			client := NewClient(".", mockRunner)
			remotes, err := client.Remotes(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrTypeGit, errors.GetType(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, remotes)
			}

			mockRunner.AssertExpectations(t)
		})
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name       string
		mockOutput string
		expected   []Branch
	}{
		{
			name:       "Native order with current marker",
			mockOutput: "  develop\n* master\n  feature/assets\n",
			expected: []Branch{
				{Name: "develop"},
				{Name: "master", Current: true},
				{Name: "feature/assets"},
			},
		},
		{
			name:       "Detached HEAD has no current branch",
			mockOutput: "* (HEAD detached at 1a2b3c4)\n  master\n",
			expected:   []Branch{{Name: "master"}},
		},
		{
			name:       "Branch checked out in another worktree",
			mockOutput: "* master\n+ hotfix\n",
			expected: []Branch{
				{Name: "master", Current: true},
				{Name: "hotfix"},
			},
		},
		{
			name:       "Fresh repository",
			mockOutput: "",
			expected:   []Branch{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRunner := new(MockRunner)
			mockRunner.On("Run", mock.Anything, "git", []string{"branch"}).Return(tt.mockOutput, nil)

			branches, err := NewClient(".", mockRunner).Branches(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, branches)
		})
	}
}

func TestTracking(t *testing.T) {
	tests := []struct {
		name          string
		includeBranch bool
		mockOutput    string
		mockError     error
		expected      string
		expectErr     bool
	}{
		{"With branch", true, "my-app/master\n", nil, "my-app/master", false},
		{"Remote only", false, "my-app/master\n", nil, "my-app", false},
		{"No upstream", false, "", assert.AnError, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRunner := new(MockRunner)
			mockRunner.On("Run", mock.Anything, "git",
				[]string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"}).
				Return(tt.mockOutput, tt.mockError)

			upstream, err := NewClient(".", mockRunner).Tracking(context.Background(), tt.includeBranch)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, upstream)
		})
	}
}

func TestCommandArguments(t *testing.T) {
	ctx := context.Background()
	mockRunner := new(MockRunner)
	client := NewClient(".", mockRunner)

	mockRunner.On("Run", mock.Anything, "git", []string{"init"}).Return("", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"checkout", "develop"}).Return("", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"remote", "add", "my-app", "my-app@deploy.eu2.frbit.com:my-app.git"}).Return("", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"add", "."}).Return("", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"commit", "-m", "fix header"}).Return("", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"status", "--porcelain"}).Return(" M index.php\n", nil)
	mockRunner.On("Run", mock.Anything, "git", []string{"log", "--format=(%h) %cr: %s", "my-app/master..HEAD"}).Return("(abc1234) 2 hours ago: fix header\n", nil)

	require.NoError(t, client.Init(ctx))
	require.NoError(t, client.Checkout(ctx, "develop"))
	require.NoError(t, client.AddRemote(ctx, "my-app", "my-app@deploy.eu2.frbit.com:my-app.git"))
	require.NoError(t, client.AddAll(ctx))
	require.NoError(t, client.Commit(ctx, "fix header"))

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, " M index.php\n", status)

	log, err := client.Log(ctx, "(%h) %cr: %s", "my-app/master..HEAD")
	require.NoError(t, err)
	assert.Contains(t, log, "fix header")

	mockRunner.AssertExpectations(t)
}

func TestPush(t *testing.T) {
	t.Run("streams output", func(t *testing.T) {
		mockRunner := new(MockRunner)
		mockRunner.On("Stream", mock.Anything, mock.Anything, "git", []string{"push", "my-app", "master"}).
			Return("Counting objects: 3\n", nil)

		var buf bytes.Buffer
		err := NewClient(".", mockRunner).Push(context.Background(), &buf, "my-app", "master")
		require.NoError(t, err)
		assert.Equal(t, "Counting objects: 3\n", buf.String())
	})

	t.Run("failure keeps tool message", func(t *testing.T) {
		cmdErr := &CommandError{Command: "git", Args: []string{"push"}, Output: "fatal: repository not found\n", Err: assert.AnError}
		mockRunner := new(MockRunner)
		mockRunner.On("Stream", mock.Anything, mock.Anything, "git", []string{"push", "my-app", "master"}).
			Return("", cmdErr)

		err := NewClient(".", mockRunner).Push(context.Background(), io.Discard, "my-app", "master")
		require.Error(t, err)
		assert.Equal(t, errors.ErrTypeGit, errors.GetType(err))
		assert.Equal(t, "fatal: repository not found", ToolMessage(err))
	})

	t.Run("timeout stays timeout", func(t *testing.T) {
		timeoutErr := errors.Wrap(errors.ErrTypeTimeout, "git push timed out", context.DeadlineExceeded)
		mockRunner := new(MockRunner)
		mockRunner.On("Stream", mock.Anything, mock.Anything, "git", []string{"push", "my-app", "master"}).
			Return("", timeoutErr)

		err := NewClient(".", mockRunner).Push(context.Background(), io.Discard, "my-app", "master")
		assert.Equal(t, errors.ErrTypeTimeout, errors.GetType(err))
		assert.Equal(t, errors.ExitCodeTimeout, errors.ExitCodeFor(err))
	})
}

func TestIsRepository(t *testing.T) {
	dir := t.TempDir()
	client := NewClient(dir, new(MockRunner))
	assert.False(t, client.IsRepository())

	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	assert.True(t, client.IsRepository())
}

// TestClient_RealGit 使用真实 git 验证解析逻辑
func TestClient_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	ctx := context.Background()
	client := NewClient(dir, NewExecRunner(dir, 0, nil))

	require.NoError(t, client.Init(ctx))
	assert.True(t, client.IsRepository())

	remotes, err := client.Remotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, remotes)

	require.NoError(t, client.AddRemote(ctx, "my-app", "my-app@deploy.eu2.frbit.com:my-app.git"))
	remotes, err = client.Remotes(ctx)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	assert.Equal(t, "my-app", remotes[0].Name)

	require.NoError(t, os.WriteFile(dir+"/index.php", []byte("<?php"), 0o644))
	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Contains(t, status, "index.php")

	_, err = client.Log(ctx, "(%h) %cr: %s", "my-app/master..HEAD")
	assert.Error(t, err)
}
