package deploy

import (
	"context"
	"strings"

	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"github.com/penwyp/codeup/ui"
	"github.com/penwyp/codeup/workcopy"
	"go.uber.org/zap"
)

const (
	// EmptyCommitMessage is reported when nothing had to be committed.
	EmptyCommitMessage = "empty commit"
	// DefaultCommitMessage is used without an operator to ask.
	DefaultCommitMessage = "init Craft"
)

// Committer reconciles uncommitted changes before a push.
type Committer struct {
	vcs      git.VersionControlClient
	prompter ui.Prompter
	console  *ui.Console
	logger   *zap.Logger
}

// NewCommitter 创建 Committer
func NewCommitter(vcs git.VersionControlClient, prompter ui.Prompter, console *ui.Console, logger *zap.Logger) *Committer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Committer{vcs: vcs, prompter: prompter, console: console, logger: logger}
}

// Commit returns the message describing what gets pushed.
//
// A clean working copy only needs the operator's go-ahead. A dirty one is
// committed as a whole with a message the operator enters; an empty message
// aborts.
func (c *Committer) Commit(ctx context.Context, status workcopy.Status) (string, error) {
	if !status.Dirty {
		ok, err := c.prompter.Confirm("About to push latest commits, proceed?", true)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.ErrDeclined
		}
		return EmptyCommitMessage, nil
	}

	c.console.Note("Uncommitted changes:", statusLines(status.Text))

	def := ""
	if !c.prompter.Interactive() {
		def = DefaultCommitMessage
	}
	message, err := c.prompter.Ask("Enter a commit message, or leave it empty to abort the commit", def)
	if err != nil {
		return "", err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.ErrCommitAborted
	}

	if err := c.vcs.AddAll(ctx); err != nil {
		return "", err
	}
	if err := c.vcs.Commit(ctx, message); err != nil {
		return "", err
	}
	c.logger.Debug("Committed working copy", zap.String("message", message))
	return message, nil
}

func statusLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
