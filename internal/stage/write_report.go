package stage

import (
	"context"
	"errors"

	"github.com/flarebyte/seshat-tally/internal/report"
)

// writeReportRunner closes the report with whatever the calculators produced.
func writeReportRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	if deps.Renderer == nil {
		return Envelope{}, errors.New("write-report: no renderer")
	}
	out := in
	out.markStage(WriteReport)
	doc := report.Document{
		Source:   in.Source,
		RowSums:  in.RowSums,
		Averages: in.Averages,
		Errors:   Failures(in),
	}
	if err := deps.Renderer.Finish(doc); err != nil {
		return Envelope{}, err
	}
	return out, nil
}

func init() {
	Register(WriteReport, writeReportRunner)
}
