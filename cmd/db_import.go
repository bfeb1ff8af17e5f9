package cmd

import (
	"github.com/penwyp/codeup/deploy"
	"github.com/spf13/cobra"
)

func newDbCommand(a *app) *cobra.Command {
	db := &cobra.Command{
		Use:   "db",
		Short: "Database helpers",
	}
	db.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Import a SQL dump into the stage database (not supported yet)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deploy.DbImport(cmd.Context(), firstArg(args))
		},
	})
	return db
}
