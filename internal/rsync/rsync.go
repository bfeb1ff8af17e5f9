// Package rsync copies folders between the hosting target and the local
// project with the rsync binary.
package rsync

import (
	"context"
	"io"
	"strings"

	"github.com/penwyp/codeup/internal/errors"
)

// DefaultFolder 未指定目录时同步的文件夹
const DefaultFolder = "web/assets"

// Runner 命令执行器接口，git.ExecRunner 满足此接口
type Runner interface {
	Stream(ctx context.Context, w io.Writer, command string, args ...string) error
}

// Options 同步选项
type Options struct {
	DryRun       bool
	RemoteOrigin bool // true 时从远端复制到本地
}

// Client 封装一次 rsync 调用
type Client struct {
	runner Runner
	remote string
	opts   Options
}

// New 创建 rsync 客户端；remote 如 my-app@deploy.eu2.frbit.com
func New(runner Runner, remote string, opts Options) *Client {
	return &Client{runner: runner, remote: remote, opts: opts}
}

// PrepareFolder normalises a project relative folder for rsync: no leading
// "./" or "/", exactly one trailing slash.
func PrepareFolder(folder string) string {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = DefaultFolder
	}
	for strings.HasPrefix(folder, "./") {
		folder = strings.TrimPrefix(folder, "./")
	}
	folder = strings.TrimLeft(folder, "/")
	return strings.TrimRight(folder, "/") + "/"
}

// RemoteURL 返回远端路径；remote 已带路径时在其后拼接
func (c *Client) RemoteURL(folder string) string {
	if strings.Contains(c.remote, ":") {
		return strings.TrimRight(c.remote, "/") + "/" + folder
	}
	return c.remote + ":" + folder
}

// Args 返回 rsync 参数
func (c *Client) Args(folder string) []string {
	folder = PrepareFolder(folder)
	args := []string{"-avz", "--human-readable"}
	if c.opts.DryRun {
		args = append(args, "--dry-run")
	}
	if c.opts.RemoteOrigin {
		return append(args, c.RemoteURL(folder), folder)
	}
	return append(args, folder, c.RemoteURL(folder))
}

// Sync runs rsync and streams its output to w.
func (c *Client) Sync(ctx context.Context, w io.Writer, folder string) error {
	err := c.runner.Stream(ctx, w, "rsync", c.Args(folder)...)
	if err == nil || errors.GetType(err) == errors.ErrTypeTimeout {
		return err
	}
	return errors.Wrap(errors.ErrTypeIO, "rsync failed", err).
		WithSuggestion("Check rsync_remote in codeup.yaml and that your SSH key is added to the app")
}
