package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "hdfstate",
	Short: "Idempotent state management for HDFS files and directories",
	Long: `hdfstate asserts the state of a single HDFS path (existence, kind,
owner, group, permission mode, replication factor) through the hdfs
command line. It queries the current state, applies only the operations
needed to converge, and reports whether anything changed. Running it
twice in a row never changes anything on the second run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hdfstate %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the structured result as JSON")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
