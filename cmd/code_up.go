package cmd

import (
	"github.com/penwyp/codeup/deploy"
	"github.com/penwyp/codeup/internal/hooks"
	"github.com/penwyp/codeup/workcopy"
	"github.com/spf13/cobra"
)

func newCodeCommand(a *app) *cobra.Command {
	code := &cobra.Command{
		Use:   "code",
		Short: "Deploy code changes",
	}

	code.AddCommand(&cobra.Command{
		Use:   "up [stage]",
		Short: "Commit local changes and push them to the stage",
		Long: `Commit local changes and push them to the stage's git remote.

The stage defaults to the only configured stage, or "production".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, stage, err := a.loadStage(firstArg(args))
			if err != nil {
				return err
			}

			session := deploy.NewSession(deploy.Options{
				StageName: name,
				Stage:     stage,
				VCS:       a.vcs,
				WorkCopy:  workcopy.New(a.vcs, nil, a.logger),
				Prompter:  a.prompter,
				Console:   a.console,
				Hooks:     hooks.NewExecutor(a.runner, a.logger),
				Notifier:  notifierProvider(a.settings.Notify, a.logger),
				Logger:    a.logger,
			})
			return session.Run(cmd.Context())
		},
	})
	return code
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
