package stage

import (
	"context"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/tally"
)

func rowSumsRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	out.markStage(RowSums)
	log := deps.logger().With(slog.String("stage", RowSums))
	log.Debug("stage start", slog.String("source", in.Source))

	var writeErr error
	onRow := func(rs tally.RowSum) {
		if deps.Renderer == nil || writeErr != nil {
			return
		}
		writeErr = deps.Renderer.RowSum(rs)
	}
	sums, err := tally.RowSums(ctx, in.Source, deps.Options, onRow)
	if writeErr != nil {
		return Envelope{}, writeErr
	}
	if err != nil {
		out.RowSums = []tally.RowSum{}
		return out, recordFailure(&out, failure(RowSums, in.Source, err), deps, log)
	}
	out.RowSums = sums
	log.Debug("stage finish", slog.Int("rows", len(sums)))
	return out, nil
}

func init() {
	Register(RowSums, rowSumsRunner)
}
