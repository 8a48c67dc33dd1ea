package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		v, err := e.db.CurrentVersion(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
		return nil
	},
}

var adminPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default categories and the bootstrap admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		password := adminPassword
		if password == "" {
			password = e.cfg.Auth.DefaultAdminPassword
		}
		if err := e.app.Seeder.InitializeDefaults(cmd.Context(), password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "defaults in place")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for a newly created admin (default AUTH_DEFAULT_ADMIN_PASSWORD)")
}
