// Package deploy drives a single "code up" run: it brings the working copy
// into a pushable state and pushes it to the hosting remote.
package deploy

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/penwyp/codeup/internal/config"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"github.com/penwyp/codeup/internal/logger"
	"github.com/penwyp/codeup/internal/notify"
	"github.com/penwyp/codeup/internal/provider"
	"github.com/penwyp/codeup/ui"
	"github.com/penwyp/codeup/workcopy"
	"go.uber.org/zap"
)

// DeployBranch 远端只接受 master
const DeployBranch = "master"

// HookRunner runs before_deploy commands, internal/hooks.Executor satisfies it.
type HookRunner interface {
	Run(ctx context.Context, w io.Writer, commands []string) error
}

// Options 构造 Session 所需的依赖
type Options struct {
	StageName string
	Stage     config.Stage

	VCS      git.VersionControlClient
	WorkCopy *workcopy.Manager
	Prompter ui.Prompter
	Console  *ui.Console
	Hooks    HookRunner
	Notifier notify.Notifier
	Logger   *zap.Logger
}

// Session is one deployment run. Its fields are filled in as Run progresses
// and are meaningless once it returns.
type Session struct {
	ID        string
	StageName string
	Stage     config.Stage

	Branch   string
	Upstream string
	Message  string

	vcs       git.VersionControlClient
	workcopy  *workcopy.Manager
	prompter  ui.Prompter
	console   *ui.Console
	hooks     HookRunner
	notifier  notify.Notifier
	resolver  *Resolver
	committer *Committer
	logger    *zap.Logger
}

// NewSession 创建部署会话
func NewSession(opts Options) *Session {
	id := uuid.NewString()
	log := logger.WithSession(opts.Logger, id, opts.StageName)

	wc := opts.WorkCopy
	if wc == nil {
		wc = workcopy.New(opts.VCS, nil, log)
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Nop{}
	}

	return &Session{
		ID:        id,
		StageName: opts.StageName,
		Stage:     opts.Stage,
		vcs:       opts.VCS,
		workcopy:  wc,
		prompter:  opts.Prompter,
		console:   opts.Console,
		hooks:     opts.Hooks,
		notifier:  n,
		resolver:  NewResolver(opts.VCS, opts.Prompter, log),
		committer: NewCommitter(opts.VCS, opts.Prompter, opts.Console, log),
		logger:    log,
	}
}

// Run executes the deployment. Errors the operator has already seen on the
// console come back marked as reported.
func (s *Session) Run(ctx context.Context) error {
	s.console.Head("Deploy recent code changes", fmt.Sprintf("%s %s", s.StageName, s.domain()))
	s.logger.Debug("Deployment started")

	if err := s.workcopy.EnsureInitialized(ctx); err != nil {
		return err
	}
	if err := s.workcopy.EnsureIgnoreFile(); err != nil {
		return err
	}

	if err := s.selectBranch(ctx); err != nil {
		return err
	}

	upstream, err := s.resolver.ResolveUpstream(ctx, s.Stage.GitRemote, s.Stage.SSHURL)
	if err != nil {
		return err
	}
	s.Upstream = upstream

	status, err := s.workcopy.Snapshot(ctx, upstream+"/"+DeployBranch)
	if err != nil {
		return err
	}
	if len(status.Log) > 0 {
		s.console.Note("Recent changes:", status.Log)
	}

	message, err := s.committer.Commit(ctx, status)
	if err != nil {
		return err
	}
	s.Message = message

	if s.hooks != nil && len(s.Stage.BeforeDeploy) > 0 {
		s.console.Section("before_deploy")
		if err := s.hooks.Run(ctx, s.console.Out(), s.Stage.BeforeDeploy); err != nil {
			return err
		}
	}

	return s.push(ctx)
}

func (s *Session) selectBranch(ctx context.Context) error {
	branches, err := s.workcopy.LocalBranches(ctx)
	if err != nil {
		return err
	}
	current, err := s.workcopy.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != nil {
		s.Branch = current.Name
	}
	if len(branches) <= 1 {
		return nil
	}

	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	choice, err := s.prompter.Choice("Select a local branch (checkout):", names, s.Branch)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return errors.ErrDeclined
		}
		return err
	}
	if err := s.workcopy.Checkout(ctx, choice); err != nil {
		return errors.Wrap(errors.ErrTypeGit, fmt.Sprintf("unable to checkout '%s'", choice), err)
	}
	s.Branch = choice
	return nil
}

func (s *Session) push(ctx context.Context) error {
	s.console.Section(fmt.Sprintf("git push (%s)", s.Message))

	tracker := s.console.StreamWriter()
	err := s.vcs.Push(ctx, tracker, s.Upstream, DeployBranch)
	if err != nil {
		s.logger.Debug("Push failed", zap.Int("retracted_lines", tracker.Lines()), zap.Error(err))
		if rerr := s.console.Retract(tracker); rerr != nil {
			s.logger.Debug("Retract failed", zap.Error(rerr))
		}
		s.console.ErrorBlock("Ooops.", git.ToolMessage(err))
		_ = s.notifier.Notify("codeup", fmt.Sprintf("Deployment to %s failed", s.StageName))
		return errors.MarkReported(err)
	}

	s.console.SuccessBlock("Code deployed successfully.")
	_ = s.notifier.Notify("codeup", fmt.Sprintf("Deployed %s to %s", s.Branch, s.StageName))
	s.logger.Debug("Deployment finished", zap.String("upstream", s.Upstream))
	return nil
}

func (s *Session) domain() string {
	if s.Stage.App != "" {
		return s.Stage.App + provider.AppDomainSuffix
	}
	if id, err := provider.ParseIdentity(s.Stage.SSHURL); err == nil {
		return id.Domain()
	}
	return ""
}
