package cmd

import (
	"github.com/penwyp/codeup/deploy"
	"github.com/penwyp/codeup/internal/cli"
	"github.com/penwyp/codeup/internal/hooks"
	"github.com/penwyp/codeup/internal/provider"
	"github.com/penwyp/codeup/internal/rsync"
	"github.com/spf13/cobra"
)

func newFolderCommand(a *app) *cobra.Command {
	folder := &cobra.Command{
		Use:   "folder",
		Short: "Sync folders with the stage",
	}

	var dryRun bool
	down := &cobra.Command{
		Use:   "down [stage] [folder]",
		Short: "Copy a remote folder into the local project with rsync",
		Long: `Copy a folder from the stage into the local project with rsync.

The folder defaults to ` + rsync.DefaultFolder + `.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := cli.NewDetector(a.runner).Require(ctx, "rsync"); err != nil {
				return err
			}

			name, stage, err := a.loadStage(firstArg(args))
			if err != nil {
				return err
			}
			dir := ""
			if len(args) > 1 {
				dir = args[1]
			}

			syncer := rsync.New(a.runner, stage.RsyncRemote, rsync.Options{DryRun: dryRun, RemoteOrigin: true})
			a.console.Head("Copy a folder from the stage", name+" "+stage.App+provider.AppDomainSuffix)
			return deploy.NewFolderDown(deploy.FolderOptions{
				StageName: name,
				Stage:     stage,
				DryRun:    dryRun,
				Syncer:    syncer,
				Prompter:  a.prompter,
				Console:   a.console,
				Hooks:     hooks.NewExecutor(a.runner, a.logger),
				Logger:    a.logger,
			}).Run(ctx, dir)
		},
	}
	down.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without copying")

	folder.AddCommand(down)
	return folder
}
