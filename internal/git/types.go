package git

import (
	"context"
	"io"
)

// Branch 本地分支，每次查询时重新读取
type Branch struct {
	Name    string // 分支名称，如 master
	Current bool   // 是否为当前检出的分支
}

// Remote Git远程仓库信息
type Remote struct {
	Name     string // 远程仓库名称，如 origin
	FetchURL string // 拉取URL
	PushURL  string // 推送URL
}

// Runner Git命令执行器接口
type Runner interface {
	// Run 执行命令并返回标准输出
	Run(ctx context.Context, command string, args ...string) (string, error)
	// Stream 执行命令并把输出实时写入 w
	Stream(ctx context.Context, w io.Writer, command string, args ...string) error
}

// VersionControlClient is the set of git operations a deployment needs.
// Every call is a fresh subprocess bounded by the runner's timeout.
type VersionControlClient interface {
	// Dir 返回工作目录
	Dir() string
	// IsRepository 检查工作目录是否已经是 git 仓库
	IsRepository() bool
	// Init 执行 git init
	Init(ctx context.Context) error
	// Branches 按 git branch 的原始顺序返回本地分支
	Branches(ctx context.Context) ([]Branch, error)
	// Checkout 切换分支
	Checkout(ctx context.Context, branch string) error
	// Remotes 获取所有远程仓库
	Remotes(ctx context.Context) ([]Remote, error)
	// AddRemote 添加远程仓库
	AddRemote(ctx context.Context, name, url string) error
	// AddAll 暂存所有改动 (git add .)
	AddAll(ctx context.Context) error
	// Commit 以给定消息提交
	Commit(ctx context.Context, message string) error
	// Status 返回 git status --porcelain 的输出
	Status(ctx context.Context) (string, error)
	// Log 返回给定范围内按 format 格式化的日志
	Log(ctx context.Context, format, revRange string) (string, error)
	// Push 推送并把 git 输出实时写入 w
	Push(ctx context.Context, w io.Writer, remote, branch string) error
	// Tracking 返回当前分支的上游，如 origin/master；includeBranch 为 false 时只返回 origin
	Tracking(ctx context.Context, includeBranch bool) (string, error)
}
