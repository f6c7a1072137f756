package cmd

import (
	"fmt"

	"github.com/apointeau/hdfstate/internal/engine"
	"github.com/apointeau/hdfstate/internal/perm"
	"github.com/spf13/cobra"
)

var (
	applyState       string
	applyOwner       string
	applyGroup       string
	applyMode        string
	applyReplication int
	applyRecurse     bool
	applyForce       bool
	applyDryRun      bool
)

var applyCmd = &cobra.Command{
	Use:   "apply PATH",
	Short: "Converge an HDFS path to the declared state",
	Long: `Queries the current state of PATH, computes the minimal set of hdfs
operations needed to reach the declared state, applies them in order, and
re-queries to report the final observed state.

States: file (entry must be a file, created empty when missing),
directory (created with parents when missing), absent (deleted when
present), touch (file created or its timestamps refreshed; directories
are left in place).

Attributes left unspecified are never touched. A run that finds the path
already converged issues no mutating command at all.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		desired, err := desiredFromFlags(cmd, args[0])
		if err != nil {
			return err
		}

		ctx, cancel := runContext(cfg)
		defer cancel()

		r := newReconciler(cfg)
		result, runErr := r.Reconcile(ctx, *desired, engine.Options{DryRun: applyDryRun})

		resp := engine.Report(args[0], result, runErr)
		if err := printResponse(resp); err != nil {
			return err
		}
		if resp.Failed {
			return fmt.Errorf("reconciliation of %s failed", args[0])
		}
		return nil
	},
}

// desiredFromFlags maps the flag set onto a DesiredState, keeping the
// unset/zero distinction: only flags the caller actually passed
// participate in the attribute diff.
func desiredFromFlags(cmd *cobra.Command, path string) (*engine.DesiredState, error) {
	desired := &engine.DesiredState{
		Path:    path,
		State:   engine.State(applyState),
		Recurse: applyRecurse,
		Force:   applyForce,
	}

	if cmd.Flags().Changed("owner") {
		desired.Owner = &applyOwner
	}
	if cmd.Flags().Changed("group") {
		desired.Group = &applyGroup
	}
	if cmd.Flags().Changed("replication") {
		desired.Replication = &applyReplication
	}
	if cmd.Flags().Changed("mode") {
		spec, err := perm.Parse(applyMode)
		if err != nil {
			return nil, fmt.Errorf("parsing --mode: %w", err)
		}
		desired.Mode = spec
	}

	return desired, nil
}

func registerApplyFlags() {
	applyCmd.Flags().StringVar(&applyState, "state", "file", "desired state: file, directory, absent, touch")
	applyCmd.Flags().StringVar(&applyOwner, "owner", "", "owner the entry should have")
	applyCmd.Flags().StringVar(&applyGroup, "group", "", "group the entry should have")
	applyCmd.Flags().StringVar(&applyMode, "mode", "", "permission mode, octal (0755) or symbolic (u=rwx,go=rx)")
	applyCmd.Flags().IntVar(&applyReplication, "replication", 0, "replication factor")
	applyCmd.Flags().BoolVar(&applyRecurse, "recurse", false, "apply owner/group/mode recursively (directories only)")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "delete non-directories recursively when converting or absenting")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "plan only, mutate nothing")
}

func init() {
	registerApplyFlags()
	rootCmd.AddCommand(applyCmd)
}
