package fanout

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// NewRootCommand builds the fanout command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "fanout",
		Short:        "Run a plan of simulated jobs on async workers",
		Long:         `fanout launches every job of a YAML plan on its own goroutine and waits for all of them under one shared timeout, reporting every failure.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(), newVersionCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var (
		planPath string
		envFiles []string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the jobs of a plan and wait for them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}

			log, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			plan, err := LoadPlan(planPath)
			if err != nil {
				return err
			}

			outcomes, runErr := Execute(cmd.Context(), plan, cfg.Timeout, log)
			if err := printOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "p", "plan.yaml", "Path to the YAML plan")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Optional .env files loaded before parsing the environment")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Shared wait budget for all jobs (0 waits without limit)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

func printOutcomes(w io.Writer, outcomes []Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tSTATUS\tDETAIL")
	for _, o := range outcomes {
		detail := o.Value
		if o.Err != nil {
			detail = o.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Job, o.Status, detail)
	}
	return tw.Flush()
}
