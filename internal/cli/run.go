package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reprise-ui/reprise/internal/harness"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute a conformance scenario",
		Long: `Execute a scenario against a fresh in-memory session and report the
outcome: the trace of registrations and reports, the final committed
snapshot, and any assertion failures.

Exit codes:
  0  scenario passed
  1  assertions failed
  2  the scenario could not be executed

Examples:
  reprise run scenario.yaml
  reprise run scenario.yaml --format json
  reprise run scenario.yaml -v`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error("E001", "cannot load scenario", err.Error())
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	formatter.VerboseLog("scenario %q: %d step(s)", scenario.Name, len(scenario.Steps))

	result, err := harness.Run(scenario)
	if err != nil {
		_ = formatter.Error("E002", "scenario execution failed", err.Error())
		return WrapExitError(ExitCommandError, "run scenario", err)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printResultText(formatter, scenario, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure,
			fmt.Sprintf("scenario %q failed with %d error(s)", scenario.Name, len(result.Errors)))
	}
	return nil
}

func printResultText(formatter *OutputFormatter, scenario *harness.Scenario, result *harness.Result) {
	status := "PASS"
	if !result.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(formatter.Writer, "%s  %s (session %s)\n", status, scenario.Name, result.SessionID)

	for _, ev := range result.Trace {
		switch ev.Type {
		case "register":
			fmt.Fprintf(formatter.Writer, "  [%d] register %-12s -> %v", ev.Step, ev.Widget, ev.Value)
			if ev.Changed {
				fmt.Fprint(formatter.Writer, " (changed)")
			}
			fmt.Fprintln(formatter.Writer)
		case "register_error":
			fmt.Fprintf(formatter.Writer, "  [%d] register %-12s !! %s\n", ev.Step, ev.Widget, ev.Error)
		case "report":
			fmt.Fprintf(formatter.Writer, "  [%d] report   %-12s <- %v\n", ev.Step, ev.Widget, ev.Value)
		case "run_finished":
			fmt.Fprintf(formatter.Writer, "  [%d] run finished\n", ev.Step)
		}
	}

	if len(result.Final) > 0 {
		fmt.Fprintln(formatter.Writer, "final state:")
		for _, entry := range result.Final {
			fmt.Fprintf(formatter.Writer, "  %s  %s = %v\n", entry.ID, entry.Slot, entry.Value)
		}
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(formatter.Writer, "assertion: %s\n", msg)
	}
}
