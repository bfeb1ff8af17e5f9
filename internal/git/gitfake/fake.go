// Package gitfake provides an in-memory git.VersionControlClient for tests.
package gitfake

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/penwyp/codeup/internal/git"
)

// Client records every call and answers from its fields.
type Client struct {
	mu sync.Mutex

	WorkDir     string
	Initialized bool
	BranchList  []git.Branch
	RemoteList  []git.Remote
	Dirty       []string // porcelain 行，如 " M index.php"
	Commits     []string
	Upstream    string

	LogOutput   string
	LogErr      error
	PushOutput  string
	PushErr     error
	CheckoutErr error
	RemotesErr  error
	CommitErr   error

	Calls []string
}

var _ git.VersionControlClient = (*Client)(nil)

// New 创建已初始化、位于 master 分支的干净仓库
func New() *Client {
	return &Client{
		WorkDir:     ".",
		Initialized: true,
		BranchList:  []git.Branch{{Name: "master", Current: true}},
	}
}

func (c *Client) record(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

// Called 报告是否出现过以 prefix 开头的调用
func (c *Client) Called(prefix string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func (c *Client) Dir() string { return c.WorkDir }

func (c *Client) IsRepository() bool { return c.Initialized }

func (c *Client) Init(ctx context.Context) error {
	c.record("init")
	c.Initialized = true
	return nil
}

func (c *Client) Branches(ctx context.Context) ([]git.Branch, error) {
	c.record("branch")
	return append([]git.Branch(nil), c.BranchList...), nil
}

func (c *Client) Checkout(ctx context.Context, branch string) error {
	c.record("checkout %s", branch)
	if c.CheckoutErr != nil {
		return c.CheckoutErr
	}
	for i := range c.BranchList {
		c.BranchList[i].Current = c.BranchList[i].Name == branch
	}
	return nil
}

func (c *Client) Remotes(ctx context.Context) ([]git.Remote, error) {
	c.record("remote -v")
	if c.RemotesErr != nil {
		return nil, c.RemotesErr
	}
	return append([]git.Remote(nil), c.RemoteList...), nil
}

func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	c.record("remote add %s %s", name, url)
	c.RemoteList = append(c.RemoteList, git.Remote{Name: name, FetchURL: url, PushURL: url})
	return nil
}

func (c *Client) AddAll(ctx context.Context) error {
	c.record("add .")
	return nil
}

func (c *Client) Commit(ctx context.Context, message string) error {
	c.record("commit -m %s", message)
	if c.CommitErr != nil {
		return c.CommitErr
	}
	c.Commits = append(c.Commits, message)
	c.Dirty = nil
	return nil
}

func (c *Client) Status(ctx context.Context) (string, error) {
	c.record("status --porcelain")
	if len(c.Dirty) == 0 {
		return "", nil
	}
	return strings.Join(c.Dirty, "\n") + "\n", nil
}

func (c *Client) Log(ctx context.Context, format, revRange string) (string, error) {
	c.record("log %s", revRange)
	return c.LogOutput, c.LogErr
}

func (c *Client) Push(ctx context.Context, w io.Writer, remote, branch string) error {
	c.record("push %s %s", remote, branch)
	if c.PushOutput != "" {
		_, _ = io.WriteString(w, c.PushOutput)
	}
	return c.PushErr
}

func (c *Client) Tracking(ctx context.Context, includeBranch bool) (string, error) {
	c.record("rev-parse @{u}")
	if c.Upstream == "" {
		return "", fmt.Errorf("no upstream configured for the current branch")
	}
	if !includeBranch {
		if i := strings.Index(c.Upstream, "/"); i >= 0 {
			return c.Upstream[:i], nil
		}
	}
	return c.Upstream, nil
}
