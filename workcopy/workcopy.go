// Package workcopy tracks the state of the local working copy that is about
// to be deployed. Nothing here is persisted; every query asks git again.
package workcopy

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/codeup/internal/assets"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"go.uber.org/zap"
)

// LogFormat 最近提交的单行格式: (abc1234) 2 hours ago: subject
const LogFormat = "(%h) %cr: %s"

// IgnoreFileName 工作目录中的忽略文件
const IgnoreFileName = ".gitignore"

// Status 工作目录状态快照
type Status struct {
	Dirty bool     // 是否存在未提交的改动
	Text  string   // git status --porcelain 原始输出
	Log   []string // 尚未推送的提交，按 LogFormat 格式化
}

// Manager 封装本地仓库状态的查询与初始化
type Manager struct {
	vcs       git.VersionControlClient
	templates fs.FS
	logger    *zap.Logger
}

// New 创建 Manager；templates 为 nil 时使用打包的模板
func New(vcs git.VersionControlClient, templates fs.FS, logger *zap.Logger) *Manager {
	if templates == nil {
		templates = assets.Templates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{vcs: vcs, templates: templates, logger: logger}
}

// EnsureInitialized runs git init unless the directory already is a repository.
func (m *Manager) EnsureInitialized(ctx context.Context) error {
	if m.vcs.IsRepository() {
		return nil
	}
	m.logger.Debug("Initializing git repository", zap.String("dir", m.vcs.Dir()))
	return m.vcs.Init(ctx)
}

// EnsureIgnoreFile copies the bundled template to .gitignore when the working
// copy has none. An existing file is never touched, but a missing template is
// always fatal.
func (m *Manager) EnsureIgnoreFile() error {
	data, err := fs.ReadFile(m.templates, assets.IgnoreTemplate)
	if err != nil {
		return errors.Wrap(errors.ErrTypeIO, errors.ErrTemplateMissing.Message, err)
	}

	target := filepath.Join(m.vcs.Dir(), IgnoreFileName)
	if _, err := os.Stat(target); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrTypeIO, "unable to inspect "+IgnoreFileName, err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return errors.Wrap(errors.ErrTypeIO, "unable to write "+IgnoreFileName, err)
	}
	m.logger.Debug("Created ignore file", zap.String("path", target))
	return nil
}

// LocalBranches 按 git branch 的原始顺序返回本地分支
func (m *Manager) LocalBranches(ctx context.Context) ([]git.Branch, error) {
	return m.vcs.Branches(ctx)
}

// CurrentBranch returns nil when HEAD is detached or no branch exists yet.
func (m *Manager) CurrentBranch(ctx context.Context) (*git.Branch, error) {
	branches, err := m.vcs.Branches(ctx)
	if err != nil {
		return nil, err
	}
	for i := range branches {
		if branches[i].Current {
			return &branches[i], nil
		}
	}
	return nil, nil
}

// Checkout 切换到指定分支
func (m *Manager) Checkout(ctx context.Context, branch string) error {
	return m.vcs.Checkout(ctx, branch)
}

// Status 返回未提交改动的状态
func (m *Manager) Status(ctx context.Context) (Status, error) {
	text, err := m.vcs.Status(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Dirty: strings.TrimSpace(text) != "",
		Text:  text,
	}, nil
}

// Snapshot 返回状态，并附带 sinceRef 之后的提交
func (m *Manager) Snapshot(ctx context.Context, sinceRef string) (Status, error) {
	status, err := m.Status(ctx)
	if err != nil {
		return status, err
	}
	status.Log = m.RecentLog(ctx, sinceRef)
	return status, nil
}

// RecentLog lists commits in sinceRef..HEAD. A range that does not resolve,
// for example before the first push, yields an empty list.
func (m *Manager) RecentLog(ctx context.Context, sinceRef string) []string {
	output, err := m.vcs.Log(ctx, LogFormat, sinceRef+"..HEAD")
	if err != nil {
		m.logger.Debug("Recent log unavailable", zap.String("since", sinceRef), zap.Error(err))
		return nil
	}

	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
