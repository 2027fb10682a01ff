// Package diagnose runs a single calculator stage and prints its envelope.
package diagnose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flarebyte/seshat-tally/cmd/seshat/run"
	"github.com/flarebyte/seshat-tally/internal/stage"
	"github.com/spf13/cobra"
)

type options struct {
	stage  string
	out    string
	pretty bool
	flags  run.Flags
}

// NewCmd returns `seshat diagnose`.
func NewCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "diagnose [csv_path]",
		Short:         "Run a single calculator stage and print its envelope as JSON",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, o, args)
		},
	}
	cmd.Flags().StringVar(&o.stage, "stage", "", "Stage name: row-sums|column-averages (required)")
	cmd.Flags().StringVar(&o.out, "out", "-", "Output path for the envelope JSON")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "Pretty JSON")
	o.flags.BindInput(cmd.Flags())
	return cmd
}

func runDiagnose(cmd *cobra.Command, o options, args []string) error {
	name := strings.TrimSpace(o.stage)
	if name == "" {
		return errors.New("missing required flag: --stage")
	}
	if !run.IsCalculatorStage(name) {
		return fmt.Errorf("invalid --stage: %s (expected %s or %s)", name, stage.RowSums, stage.ColumnAverages)
	}
	p, err := run.Prepare(o.flags, args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := p.Stages(ctx, name)
	if err != nil {
		return err
	}
	if o.out != "-" {
		return writeJSONFile(o.out, env, o.pretty)
	}
	return printEnvelope(cmd.OutOrStdout(), env, o.pretty)
}

func encodeEnvelope(env stage.Envelope, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(env, "", "  ")
	}
	return json.Marshal(env)
}

func printEnvelope(w io.Writer, env stage.Envelope, pretty bool) error {
	b, err := encodeEnvelope(env, pretty)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeJSONFile(path string, env stage.Envelope, pretty bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	b, err := encodeEnvelope(env, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
