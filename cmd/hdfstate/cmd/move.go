package cmd

import (
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move SRC DST",
	Short: "Rename an HDFS entry",
	Long: `Renames SRC to DST with hdfs dfs -mv. Both paths must be absolute;
the move fails if DST already exists.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := runContext(cfg)
		defer cancel()

		r := newReconciler(cfg)
		if err := r.Move(ctx, args[0], args[1]); err != nil {
			errorf("%s", err)
			return err
		}

		info("moved %s -> %s", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
