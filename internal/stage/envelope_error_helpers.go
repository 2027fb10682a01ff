package stage

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/report"
)

// failure classifies a calculator error for path.
func failure(stageName, path string, err error) Error {
	kind := report.KindRead
	if errors.Is(err, fs.ErrNotExist) {
		kind = report.KindNotFound
	}
	return sanitizedError(Error{Stage: stageName, Kind: kind, Path: path, Message: err.Error()})
}

func (e Error) reportFailure() report.Failure {
	return report.Failure{Stage: e.Stage, Kind: e.Kind, Path: e.Path, Message: e.Message}
}

// recordFailure appends e to out and prints it. Only a write error on the
// renderer is returned.
func recordFailure(out *Envelope, e Error, deps Deps, log *slog.Logger) error {
	out.Errors = append(out.Errors, e)
	log.Warn("calculator failed", slog.String("kind", e.Kind), slog.String("error", e.Message))
	if deps.Renderer == nil {
		return nil
	}
	return deps.Renderer.Failure(e.reportFailure())
}

// Failures converts the envelope errors for the report.
func Failures(env Envelope) []report.Failure {
	out := make([]report.Failure, 0, len(env.Errors))
	for _, e := range env.Errors {
		out = append(out, e.reportFailure())
	}
	return out
}
