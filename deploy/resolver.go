package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"github.com/penwyp/codeup/internal/provider"
	"github.com/penwyp/codeup/ui"
	"go.uber.org/zap"
)

// Resolver picks the git remote a deployment pushes to, creating it from the
// stage's hosting identity when needed.
type Resolver struct {
	vcs      git.VersionControlClient
	prompter ui.Prompter
	logger   *zap.Logger
}

// NewResolver 创建 Resolver
func NewResolver(vcs git.VersionControlClient, prompter ui.Prompter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{vcs: vcs, prompter: prompter, logger: logger}
}

// ResolveUpstream returns the remote name to push to.
//
// gitRemote is the configured "remote/branch"; only the part before the first
// slash is used. With no remotes at all the operator is asked before one is
// added. A single remote always wins. With several remotes the configured
// name is trusted even when git does not know it.
//
// sshURL is validated up front, also when the configured remote already
// exists, matching the check done when the stage is loaded.
func (r *Resolver) ResolveUpstream(ctx context.Context, gitRemote, sshURL string) (string, error) {
	id, err := provider.ParseIdentity(sshURL)
	if err != nil {
		return "", err
	}

	candidate := gitRemote
	if i := strings.Index(candidate, "/"); i >= 0 {
		candidate = candidate[:i]
	}

	remotes := r.remotes(ctx)
	if len(remotes) == 0 {
		ok, err := r.prompter.Confirm(fmt.Sprintf("No git remotes configured. Do you want to add '%s'?", sshURL), false)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.ErrAborted
		}
		if err := r.vcs.AddRemote(ctx, id.RemoteName(), id.RemoteURL()); err != nil {
			return "", err
		}
		return id.RemoteName(), nil
	}

	if !hasRemote(remotes, candidate) && !hasRemote(remotes, id.RemoteName()) {
		r.logger.Debug("Configured remote missing, adding it",
			zap.String("candidate", candidate),
			zap.String("remote", id.RemoteName()))
		if err := r.vcs.AddRemote(ctx, id.RemoteName(), id.RemoteURL()); err != nil {
			return "", err
		}
		remotes = r.remotes(ctx)
	}

	if len(remotes) == 1 {
		return remotes[0].Name, nil
	}

	return candidate, nil
}

// remotes treats a failing listing as "no remotes".
func (r *Resolver) remotes(ctx context.Context) []git.Remote {
	remotes, err := r.vcs.Remotes(ctx)
	if err != nil {
		r.logger.Debug("Listing remotes failed", zap.Error(err))
		return nil
	}
	return remotes
}

func hasRemote(remotes []git.Remote, name string) bool {
	for _, remote := range remotes {
		if remote.Name == name {
			return true
		}
	}
	return false
}
