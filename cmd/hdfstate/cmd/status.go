package cmd

import (
	"fmt"

	"github.com/apointeau/hdfstate/internal/engine"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status PATH",
	Short: "Show the current state of an HDFS path",
	Long: `Queries PATH through the hdfs CLI and prints the structured state:
existence, kind, owner, group, permission mode, replication. A missing
path is a legitimate result, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := runContext(cfg)
		defer cancel()

		r := newReconciler(cfg)
		status, runErr := r.Status(ctx, args[0])

		resp := engine.ReportStatus(args[0], status, runErr)
		if err := printResponse(resp); err != nil {
			return err
		}
		if resp.Failed {
			return fmt.Errorf("status query of %s failed", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
