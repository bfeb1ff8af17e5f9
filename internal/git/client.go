package git

import (
	"context"
	"fmt"
	"io"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/penwyp/codeup/internal/errors"
)

// Client 基于 git 子进程的 VersionControlClient 实现
type Client struct {
	dir    string
	runner Runner
}

// NewClient 创建绑定到 dir 的 git 客户端
func NewClient(dir string, runner Runner) *Client {
	return &Client{dir: dir, runner: runner}
}

func (c *Client) Dir() string { return c.dir }

// IsRepository 通过 go-git 打开仓库判断，不启动子进程
func (c *Client) IsRepository() bool {
	_, err := gogit.PlainOpenWithOptions(c.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.runner.Run(ctx, "git", "init")
	return wrap("git init failed", err)
}

// Branches 解析 git branch 输出，跳过 detached HEAD 条目
func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	output, err := c.runner.Run(ctx, "git", "branch")
	if err != nil {
		return nil, wrap("failed to list branches", err)
	}
	return parseBranches(output), nil
}

func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.runner.Run(ctx, "git", "checkout", branch)
	return wrap(fmt.Sprintf("failed to checkout branch '%s'", branch), err)
}

// Remotes 获取所有远程仓库，保持 git remote -v 中首次出现的顺序
func (c *Client) Remotes(ctx context.Context) ([]Remote, error) {
	output, err := c.runner.Run(ctx, "git", "remote", "-v")
	if err != nil {
		return nil, wrap("failed to get remotes", err)
	}
	return parseRemotes(output), nil
}

func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	_, err := c.runner.Run(ctx, "git", "remote", "add", name, url)
	return wrap(fmt.Sprintf("failed to add remote '%s'", name), err)
}

func (c *Client) AddAll(ctx context.Context) error {
	_, err := c.runner.Run(ctx, "git", "add", ".")
	return wrap("git add failed", err)
}

func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.runner.Run(ctx, "git", "commit", "-m", message)
	return wrap("git commit failed", err)
}

func (c *Client) Status(ctx context.Context) (string, error) {
	output, err := c.runner.Run(ctx, "git", "status", "--porcelain")
	if err != nil {
		return "", wrap("git status failed", err)
	}
	return output, nil
}

func (c *Client) Log(ctx context.Context, format, revRange string) (string, error) {
	args := []string{"log", "--format=" + format}
	if revRange != "" {
		args = append(args, revRange)
	}
	output, err := c.runner.Run(ctx, "git", args...)
	if err != nil {
		return "", wrap("git log failed", err)
	}
	return output, nil
}

func (c *Client) Push(ctx context.Context, w io.Writer, remote, branch string) error {
	err := c.runner.Stream(ctx, w, "git", "push", remote, branch)
	return wrap("git push failed", err)
}

func (c *Client) Tracking(ctx context.Context, includeBranch bool) (string, error) {
	output, err := c.runner.Run(ctx, "git", "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		return "", wrap("no upstream configured for the current branch", err)
	}
	upstream := strings.TrimSpace(output)
	if !includeBranch {
		if i := strings.Index(upstream, "/"); i >= 0 {
			upstream = upstream[:i]
		}
	}
	return upstream, nil
}

// wrap 给子进程错误加上类型；超时保持 ErrTypeTimeout
func wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.GetType(err) == errors.ErrTypeTimeout {
		return err
	}
	return errors.Wrap(errors.ErrTypeGit, message, err)
}

// ToolMessage 返回失败命令自身输出的文本，没有时返回错误描述
func ToolMessage(err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		if out := strings.TrimSpace(ce.Output); out != "" {
			return out
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func parseBranches(output string) []Branch {
	branches := []Branch{}
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		current := strings.HasPrefix(line, "* ")
		name := strings.TrimSpace(strings.TrimLeft(line, "*+ "))
		// 格式: * (HEAD detached at 1a2b3c4)
		if strings.HasPrefix(name, "(") {
			continue
		}
		branches = append(branches, Branch{Name: name, Current: current})
	}
	return branches
}

func parseRemotes(output string) []Remote {
	result := []Remote{}
	index := make(map[string]int)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// 格式: origin	https://github.com/owner/repo.git (fetch)
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		name := parts[0]
		url := parts[1]
		typeStr := strings.Trim(parts[2], "()")

		i, exists := index[name]
		if !exists {
			result = append(result, Remote{Name: name})
			i = len(result) - 1
			index[name] = i
		}

		switch typeStr {
		case "fetch":
			result[i].FetchURL = url
		case "push":
			result[i].PushURL = url
		}
	}

	return result
}
