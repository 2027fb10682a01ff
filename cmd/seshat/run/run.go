// Package run implements the report behind the root command.
package run

import (
	"context"

	"github.com/spf13/cobra"
)

// Report prints the row sums and column averages of the file named by args
// (or the configured default path). Calculator failures are part of the
// report and leave the exit status at zero.
func Report(cmd *cobra.Command, f Flags, args []string) error {
	p, err := Prepare(f, args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err = executePipeline(ctx, p, cmd.OutOrStdout())
	return err
}
