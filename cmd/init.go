package cmd

import (
	"fmt"
	"os"

	"github.com/penwyp/codeup/internal/config"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCommand(a *app) *cobra.Command {
	var (
		stage config.Stage
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [stage]",
		Short: "Write a stage to the configuration file",
		Long: `Write a stage to the configuration file, creating the file if needed.

git_remote defaults to the upstream tracked by the current branch, or
"{app}/master" when there is none.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := firstArg(args)
			if name == "" {
				name = config.DefaultStageName
			}

			if stage.SSHURL == "" {
				answer, err := a.prompter.Ask("SSH URL of the app ({app}@deploy.{region}.frbit.com)", "")
				if err != nil {
					return err
				}
				stage.SSHURL = answer
			}
			if stage.SSHURL == "" {
				return errors.ErrInvalidIdentity
			}

			if stage.GitRemote == "" && a.vcs.IsRepository() {
				if tracking, err := a.vcs.Tracking(ctx, true); err == nil {
					stage.GitRemote = tracking
				} else {
					a.logger.Debug("No upstream tracked, falling back to the app remote", zap.Error(err))
				}
			}

			resolved, err := stage.Resolve()
			if err != nil {
				return err
			}

			manager, err := config.NewYAMLConfigManager(a.settings.ConfigPath)
			if err != nil {
				return err
			}

			existing, err := manager.Load()
			switch {
			case err != nil && os.IsNotExist(err):
				err = manager.CreateDefaultConfig(name, resolved)
			case err != nil:
				return err
			default:
				if _, ok := existing.Stages[name]; ok && !force {
					return errors.New(errors.ErrTypeConfig, fmt.Sprintf("stage '%s' already exists in %s", name, manager.Path())).
						WithSuggestion("pass --force to overwrite it")
				}
				err = manager.UpdateStage(name, resolved)
			}
			if err != nil {
				return err
			}

			a.console.SuccessBlock(fmt.Sprintf("Stage '%s' written to %s (git remote %s)", name, manager.Path(), resolved.GitRemote))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&stage.SSHURL, "ssh-url", "", "SSH URL of the app, {app}@deploy.{region}.frbit.com")
	flags.StringVar(&stage.App, "app", "", "app name, defaults to the part of the SSH URL before @")
	flags.StringVar(&stage.GitRemote, "git-remote", "", "remote/branch to deploy to")
	flags.StringVar(&stage.RsyncRemote, "rsync-remote", "", "rsync target, defaults to the SSH URL")
	flags.StringSliceVar(&stage.BeforeDeploy, "before-deploy", nil, "command to run before every push (repeatable)")
	flags.BoolVar(&force, "force", false, "overwrite an existing stage")
	return cmd
}
