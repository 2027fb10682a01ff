package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/flarebyte/seshat-tally/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewCmd returns `seshat version`.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short || !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "seshat %s\n", buildinfo.Summary())
				return err
			}

			// JSON goes to stdout, the human line to stderr.
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "seshat version: %s\n", buildinfo.Summary())
			out := map[string]any{
				"version":   buildinfo.Version,
				"commit":    buildinfo.Commit,
				"date":      buildinfo.Date,
				"built_by":  buildinfo.BuiltBy,
				"go":        runtime.Version(),
				"go_os":     runtime.GOOS,
				"go_arch":   runtime.GOARCH,
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			}
			return encodeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}
