package weights

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/geoweights/geo"
	"github.com/hupe1980/geoweights/index"
)

// ProgressFunc receives the number of finished rows out of total.
// It is called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// BuildOptions are shared by all builders.
type BuildOptions struct {
	// Workers is the number of goroutines building rows. Values below 1
	// build sequentially. Results do not depend on Workers.
	Workers int

	// Logger receives debug and progress records. Nil discards them.
	Logger *slog.Logger

	// Progress, if set, is called periodically and once after the last row.
	Progress ProgressFunc

	// ProgressInterval throttles Progress and progress logging.
	// Defaults to one second.
	ProgressInterval time.Duration
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// units converts index-space distances to output units.
type units struct {
	sphere bool
	miles  bool
}

func newUnits(idx index.Index, miles bool) units {
	return units{sphere: idx.Space() == index.SpaceSphere, miles: miles}
}

func (u units) out(d float64) float64 {
	if u.sphere {
		return geo.ChordToDist(d, u.miles)
	}
	return d
}

// forEachRow calls fn for every row in [0, n), splitting the rows into
// contiguous chunks across the configured workers. It stops at the first
// error or when ctx is cancelled.
func forEachRow(ctx context.Context, n int, opts BuildOptions, op string, fn func(i int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := max(opts.Workers, 1)
	if workers > n {
		workers = max(n, 1)
	}

	p := newProgress(opts, op, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
				p.add()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	p.finish()
	return nil
}

type progress struct {
	op       string
	total    int
	done     atomic.Int64
	fn       ProgressFunc
	logger   *slog.Logger
	sometime rate.Sometimes
}

func newProgress(opts BuildOptions, op string, total int) *progress {
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &progress{
		op:       op,
		total:    total,
		fn:       opts.Progress,
		logger:   opts.logger(),
		sometime: rate.Sometimes{Interval: interval},
	}
}

func (p *progress) add() {
	done := int(p.done.Add(1))
	p.sometime.Do(func() {
		p.report(done)
	})
}

func (p *progress) finish() {
	p.report(p.total)
}

func (p *progress) report(done int) {
	p.logger.Debug("building weights", "op", p.op, "done", done, "total", p.total)
	if p.fn != nil {
		p.fn(done, p.total)
	}
}
