package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	storeID   string
	backupDir string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a local JSON backup of the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.resolveStore(cmd.Context(), storeID)
		if err != nil {
			return err
		}
		dir := backupDir
		if dir == "" {
			dir = e.cfg.Backup.Dir
		}
		path, err := e.app.Backups.BackupToFile(cmd.Context(), id, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a local JSON backup",
	Long: `Restore replaces local rows with the rows in the backup file. Backups
older than the local backup version are refused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if err := e.app.Backups.RestoreFromLocal(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", args[0])
		return nil
	},
}

var remoteBackupCmd = &cobra.Command{
	Use:   "remote-backup",
	Short: "Upload a backup to MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.resolveStore(cmd.Context(), storeID)
		if err != nil {
			return err
		}
		v, err := e.app.Backups.BackupToRemote(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "remote backup version %d stored\n", v)
		return nil
	},
}

var remoteRestoreCmd = &cobra.Command{
	Use:   "remote-restore",
	Short: "Restore the newest backup from MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.resolveStore(cmd.Context(), storeID)
		if err != nil {
			return err
		}
		v, err := e.app.Backups.RestoreFromRemote(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored remote backup version %d\n", v)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{backupCmd, remoteBackupCmd, remoteRestoreCmd} {
		c.Flags().StringVar(&storeID, "store", "", "store id (default: the first store)")
		rootCmd.AddCommand(c)
	}
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "output directory (default BACKUP_DIR)")
	rootCmd.AddCommand(restoreCmd)
}
