package root

import (
	"context"

	"github.com/flarebyte/seshat-tally/cmd/seshat/diagnose"
	"github.com/flarebyte/seshat-tally/cmd/seshat/run"
	"github.com/flarebyte/seshat-tally/cmd/seshat/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seshat.
func NewRootCmd() *cobra.Command {
	var flags run.Flags
	cmd := &cobra.Command{
		Use:   "seshat [csv_path]",
		Short: "Row sums and column averages of the numeric cells of a CSV or XLSX file",
		Long: "Prints the sum of every data row and the average of every column.\n" +
			"Cells that are not numbers are skipped; a column without any number is reported as non-numeric.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.Report(cmd, flags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Bind(cmd.Flags())

	// Subcommands
	cmd.AddCommand(version.NewCmd())
	cmd.AddCommand(diagnose.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
