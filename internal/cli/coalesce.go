package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

// NewCoalesceCommand creates the coalesce command.
func NewCoalesceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coalesce <old-snapshot.json> <new-snapshot.json>",
		Short: "Merge two reported snapshots",
		Long: `Merge an older reported snapshot into a newer one and print the result.

The newer value wins for every widget except unconsumed trigger pulses:
a pulse that is true in the old snapshot is re-asserted onto the result
when the identity still occupies the trigger slot, so button presses are
never lost between runs.

Examples:
  reprise coalesce pending.json incoming.json
  reprise coalesce pending.json incoming.json --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoalesce(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runCoalesce(opts *RootOptions, oldPath, newPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	oldSnap, err := loadSnapshotFile(oldPath)
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("cannot load %s", oldPath), err.Error())
		return WrapExitError(ExitCommandError, "load old snapshot", err)
	}
	newSnap, err := loadSnapshotFile(newPath)
	if err != nil {
		_ = formatter.Error("E001", fmt.Sprintf("cannot load %s", newPath), err.Error())
		return WrapExitError(ExitCommandError, "load new snapshot", err)
	}

	formatter.VerboseLog("old: %d widget(s), new: %d widget(s)", oldSnap.Len(), newSnap.Len())

	merged := widget.Coalesce(oldSnap, newSnap)
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "marshal merged snapshot", err)
	}

	if opts.Format == "json" {
		return formatter.Success(json.RawMessage(data))
	}
	fmt.Fprintln(formatter.Writer, string(data))
	return nil
}

func loadSnapshotFile(path string) (*wire.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap wire.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
