// Package tally computes per-row sums and per-column averages over the
// numeric cells of a header-first table. Cells that do not parse as numbers
// are absent: they add nothing to a row sum and are not counted in a column
// average.
package tally

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/flarebyte/seshat-tally/internal/rowfilter"
	"github.com/flarebyte/seshat-tally/internal/table"
)

// Options configures one pass over a file.
type Options struct {
	Table table.Options
	// Filter is an optional Lua predicate; rows it rejects are skipped.
	Filter  string
	Sandbox rowfilter.Sandbox
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// scan opens path, reads the header and hands every kept row to visit along
// with the header. The file is closed before scan returns.
func scan(ctx context.Context, path string, opts Options, visit func(header []string, row table.Row)) ([]string, error) {
	r, err := table.Open(path, opts.Table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var filter *rowfilter.Filter
	if opts.Filter != "" {
		filter, err = rowfilter.Compile(opts.Filter, opts.Sandbox)
		if err != nil {
			return nil, err
		}
		defer filter.Close()
	}

	log := opts.logger()
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return r.Header(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if filter != nil {
			keep, err := filter.Keep(ctx, row)
			if err != nil {
				return nil, err
			}
			if !keep {
				log.Debug("row dropped by filter", slog.Int("row", row.Index))
				continue
			}
		}
		visit(r.Header(), row)
	}
}
