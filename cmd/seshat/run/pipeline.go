package run

import (
	"context"
	"io"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/report"
	"github.com/flarebyte/seshat-tally/internal/stage"
)

// reportStages is the fixed pipeline behind `seshat [csv_path]`.
var reportStages = []string{stage.RowSums, stage.ColumnAverages, stage.WriteReport}

// executePipeline announces the source, then runs the calculators and the
// report writer against the same renderer.
func executePipeline(ctx context.Context, p Prepared, w io.Writer) (stage.Envelope, error) {
	r := report.New(w, p.Settings.Format, p.Settings.Precision)
	if err := r.Start(p.Envelope.Source); err != nil {
		return stage.Envelope{}, err
	}
	p.Deps.Renderer = r
	out, err := p.Stages(ctx, reportStages...)
	if err != nil {
		return stage.Envelope{}, err
	}
	p.Deps.Logger.Info("report written",
		slog.String("format", string(r.Format())),
		slog.String("ragged", string(p.ragged())),
		slog.Int("rows", len(out.RowSums)),
		slog.Int("columns", len(out.Averages)),
		slog.Int("errors", len(out.Errors)))
	return out, nil
}
