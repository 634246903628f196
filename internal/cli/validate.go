package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reprise-ui/reprise/internal/catalog"
	"github.com/reprise-ui/reprise/internal/harness"
	"github.com/reprise-ui/reprise/internal/widget"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Catalog string
}

// ValidationIssue is one declaration that failed catalog validation.
type ValidationIssue struct {
	Step    int    `json:"step"`
	Widget  string `json:"widget"`
	Message string `json:"message"`
}

// ValidationReport is the validate command's output payload.
type ValidationReport struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario's widget declarations against a catalog",
		Long: `Check every widget declaration in a scenario against the widget
catalog: element kinds must exist and configurations must satisfy the
catalog's CUE schemas. No session is created and nothing executes.

Examples:
  reprise validate scenario.yaml
  reprise validate scenario.yaml --catalog custom.cue
  reprise validate scenario.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "CUE catalog file (defaults to the embedded catalog)")

	return cmd
}

func runValidate(opts *ValidateOptions, scenarioPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		_ = formatter.Error("E001", "cannot load scenario", err.Error())
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	cat, err := loadCatalog(opts.Catalog)
	if err != nil {
		_ = formatter.Error("E002", "cannot load catalog", err.Error())
		return WrapExitError(ExitCommandError, "load catalog", err)
	}

	var issues []ValidationIssue
	for i, step := range scenario.Steps {
		for _, decl := range step.Run {
			formatter.VerboseLog("validating step %d widget %q (%s)", i, decl.As, decl.Type)
			if err := cat.ValidateConfig(widget.ElementType(decl.Type), decl.Config); err != nil {
				issues = append(issues, ValidationIssue{
					Step:    i,
					Widget:  decl.As,
					Message: err.Error(),
				})
			}
		}
	}

	if len(issues) > 0 {
		if opts.Format == "json" {
			_ = formatter.Success(ValidationReport{Valid: false, Issues: issues})
		} else {
			fmt.Fprintln(formatter.Writer, "validation failed")
			for _, issue := range issues {
				fmt.Fprintf(formatter.Writer, "  step %d, widget %q: %s\n",
					issue.Step, issue.Widget, issue.Message)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationReport{Valid: true})
	}
	fmt.Fprintf(formatter.Writer, "all declarations valid (%d step(s))\n", len(scenario.Steps))
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
