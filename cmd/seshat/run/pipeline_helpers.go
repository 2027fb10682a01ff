package run

import (
	"context"
	"io"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/config"
	"github.com/flarebyte/seshat-tally/internal/logging"
	"github.com/flarebyte/seshat-tally/internal/stage"
	"github.com/flarebyte/seshat-tally/internal/table"
	"github.com/flarebyte/seshat-tally/internal/tally"
)

// runStages executes the provided list of stage names in order.
func runStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps) (stage.Envelope, error) {
	out := in
	var err error
	for _, name := range stages {
		out, err = stage.Run(ctx, name, out, deps)
		if err != nil {
			return stage.Envelope{}, err
		}
	}
	return out, nil
}

// Prepared is a resolved run: the first envelope and the stage dependencies
// minus the renderer.
type Prepared struct {
	Settings config.Settings
	Envelope stage.Envelope
	Deps     stage.Deps
}

// Prepare resolves settings from f, picks the input path from args and builds
// the logger on stderr. Errors carry their exit code.
func Prepare(f Flags, args []string, stderr io.Writer) (Prepared, error) {
	settings, err := config.Resolve(f.overrides())
	if err != nil {
		return Prepared{}, exitError(err)
	}
	logger, err := logging.New(stderr, settings.LogLevel)
	if err != nil {
		return Prepared{}, exitError(err)
	}
	path := settings.DefaultPath
	if len(args) > 0 {
		path = args[0]
	}
	logger.Debug("settings resolved", slog.String("settings", settings.String()), slog.String("source", path))

	env := stage.Envelope{
		Source: path,
		Meta: &stage.Meta{
			ConfigPath: f.Config,
			Ragged:     string(settings.Table.Ragged),
			Filter:     settings.Filter,
		},
	}
	deps := stage.Deps{
		Options: tally.Options{
			Table:   settings.Table,
			Filter:  settings.Filter,
			Sandbox: settings.Sandbox,
			Logger:  logger,
		},
		Logger: logger,
	}
	return Prepared{Settings: settings, Envelope: env, Deps: deps}, nil
}

// Stages runs the named stages on p, returning any fatal error unchanged.
func (p Prepared) Stages(ctx context.Context, names ...string) (stage.Envelope, error) {
	return runStages(ctx, p.Envelope, names, p.Deps)
}

// IsCalculatorStage reports whether name can run without a renderer.
func IsCalculatorStage(name string) bool {
	return name == stage.RowSums || name == stage.ColumnAverages
}

// ragged reports the effective ragged policy, for logs.
func (p Prepared) ragged() table.RaggedPolicy { return p.Settings.Table.Ragged }
