package deploy

import (
	"context"
	"fmt"

	"github.com/penwyp/codeup/internal/config"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/rsync"
	"github.com/penwyp/codeup/ui"
	"go.uber.org/zap"
)

// FolderOptions 构造 FolderDown 所需的依赖
type FolderOptions struct {
	StageName string
	Stage     config.Stage
	DryRun    bool

	Syncer   *rsync.Client
	Prompter ui.Prompter
	Console  *ui.Console
	Hooks    HookRunner
	Logger   *zap.Logger
}

// FolderDown copies a remote folder, usually uploaded assets, into the local
// project.
type FolderDown struct {
	opts FolderOptions
}

// NewFolderDown 创建 FolderDown
func NewFolderDown(opts FolderOptions) *FolderDown {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &FolderDown{opts: opts}
}

// Run syncs folder (DefaultFolder when empty) after the operator confirmed.
// Declining is an abort, not a benign no-op.
func (f *FolderDown) Run(ctx context.Context, folder string) error {
	o := f.opts
	folder = rsync.PrepareFolder(folder)

	o.Console.Section("Copy folder down")
	o.Console.Println(fmt.Sprintf("rsync %s → %s", o.Syncer.RemoteURL(folder), folder))

	ok, err := o.Prompter.Confirm("Are you sure?", true)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrAborted
	}

	if o.Hooks != nil && len(o.Stage.BeforeDeploy) > 0 {
		o.Console.Section("before_deploy")
		if err := o.Hooks.Run(ctx, o.Console.Out(), o.Stage.BeforeDeploy); err != nil {
			return err
		}
	}

	if o.DryRun {
		o.Console.Section("Rsync dry-run")
	} else {
		o.Console.Section("Rsync started")
	}
	o.Logger.Debug("Syncing folder",
		zap.String("stage", o.StageName),
		zap.String("folder", folder),
		zap.Bool("dry_run", o.DryRun))

	if err := o.Syncer.Sync(ctx, o.Console.Out(), folder); err != nil {
		return err
	}
	o.Console.SuccessBlock("done")
	return nil
}
