package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrNoAttempts is returned when a controller is configured to run zero attempts
var ErrNoAttempts = errors.New("no attempt produced a result")

// Better reports whether candidate a beats b: strictly fewer unfilled slots first,
// then lower quota deviation.
func Better(a, b *model.Result) bool {
	if a.UnfilledSlots != b.UnfilledSlots {
		return a.UnfilledSlots < b.UnfilledSlots
	}
	return a.QuotaDeviation < b.QuotaDeviation
}

// runAttempts runs n independent greedy attempts seeded from base and hands every
// result to collect. collect is called under a lock, in no particular order.
// With workers <= 1 the attempts run serially on the calling goroutine.
func (e *Engine) runAttempts(ctx context.Context, n int, base int64, workers int, collect func(i int, res *model.Result)) error {
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			collect(i, e.RunAttempt(NewRand(AttemptSeed(base, i))))
		}
		return nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := e.RunAttempt(NewRand(AttemptSeed(base, i)))
			mu.Lock()
			defer mu.Unlock()
			collect(i, res)
			return nil
		})
	}
	return g.Wait()
}

// RunMonteCarlo runs the greedy engine attempts times with independent tie-breaks
// and returns the best result. The reduction is deterministic for a given seed,
// whatever the number of workers: ties on the comparator go to the lower attempt index.
func (e *Engine) RunMonteCarlo(ctx context.Context, attempts int, seed int64, workers int) (*model.Result, error) {
	if attempts <= 0 {
		return nil, ErrNoAttempts
	}

	var best *model.Result
	bestIndex := -1

	err := e.runAttempts(ctx, attempts, seed, workers, func(i int, res *model.Result) {
		if best == nil || Better(res, best) || (!Better(best, res) && i < bestIndex) {
			best = res
			bestIndex = i
		}
	})
	if err != nil {
		return nil, fmt.Errorf("monte carlo run interrupted: %w", err)
	}
	if best == nil {
		return nil, ErrNoAttempts
	}

	e.logger.Debug("Monte Carlo run complete",
		zap.Int("attempts", attempts),
		zap.Int("best_attempt", bestIndex),
		zap.Int("unfilled", best.UnfilledSlots),
		zap.Int("quota_deviation", best.QuotaDeviation))

	log := newLogBuffer()
	log.addf("monte carlo: %d attempts, best attempt %d (unfilled %d, quota deviation %d)",
		attempts, bestIndex, best.UnfilledSlots, best.QuotaDeviation)
	log.addAll(best.Logs)

	out := *best
	out.Logs = log.Lines()
	out.Seed = seed
	return &out, nil
}
