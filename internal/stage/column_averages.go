package stage

import (
	"context"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/tally"
)

func columnAveragesRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	out.markStage(ColumnAverages)
	log := deps.logger().With(slog.String("stage", ColumnAverages))
	log.Debug("stage start", slog.String("source", in.Source))

	avgs, err := tally.ColumnAverages(ctx, in.Source, deps.Options)
	if err != nil {
		out.Averages = tally.Averages{}
		return out, recordFailure(&out, failure(ColumnAverages, in.Source, err), deps, log)
	}
	out.Averages = avgs
	log.Debug("stage finish", slog.Int("columns", len(avgs)))
	return out, nil
}

func init() {
	Register(ColumnAverages, columnAveragesRunner)
}
