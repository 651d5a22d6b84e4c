package pairing

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/ckstar/aod"
)

// RunOptions configures Engine.Run.
type RunOptions struct {
	Mixing Mixing

	// Workers bounds the number of collisions or mixing bins processed
	// concurrently. Zero means GOMAXPROCS.
	Workers int

	NoSame  bool
	NoMixed bool
}

// Run processes every collision of events with ProcessSame and every mixing
// pair with ProcessMixed. It stops at the first error or when ctx is done.
func (e *Engine) Run(ctx context.Context, events []aod.Event, opts RunOptions) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if !opts.NoMixed {
		if err := opts.Mixing.Validate(); err != nil {
			return err
		}
	}

	start := time.Now()
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	if !opts.NoSame {
		for i := range events {
			if gctx.Err() != nil {
				break
			}
			ev := events[i]
			grp.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := e.ProcessSame(ev); err != nil {
					return fmt.Errorf("same-event collision %d: %w", ev.Collision.GlobalIndex, err)
				}
				return nil
			})
		}
	}

	var nbins int
	if !opts.NoMixed {
		bins := opts.Mixing.Binning.Partition(events, e.mixed.Cuts().Estimator)
		nbins = len(bins)
		for _, bin := range bins {
			if gctx.Err() != nil {
				break
			}
			grp.Go(func() error {
				for _, p := range bin.Pairs(opts.Mixing.Depth) {
					if err := gctx.Err(); err != nil {
						return err
					}
					ev1, ev2 := events[p.First], events[p.Second]
					if err := e.ProcessMixed(ev1, ev2); err != nil {
						return fmt.Errorf("mixed-event bin %v collisions (%d, %d): %w",
							bin.Key, ev1.Collision.GlobalIndex, ev2.Collision.GlobalIndex, err,
						)
					}
				}
				return nil
			})
		}
	}

	if err := grp.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	st := e.Stats()
	e.msg.Info("pairing done",
		zap.Int("events", len(events)),
		zap.Int("workers", workers),
		zap.Int("mixing-bins", nbins),
		zap.Int64("collisions", st.Collisions),
		zap.Int64("rejected", st.Rejected),
		zap.Int64("pions", st.Pions),
		zap.Int64("k0s", st.K0S),
		zap.Int64("same-fills", st.SameFills),
		zap.Int64("mixed-pairs", st.MixedPairs),
		zap.Int64("mixed-fills", st.MixedFills),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
