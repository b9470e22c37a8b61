package roster

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

type generateOptions struct {
	logger *zap.Logger
}

// Option configures Generate
type Option func(*generateOptions)

// WithLogger routes engine diagnostics to logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *generateOptions) {
		o.logger = logger
	}
}

// Generate builds a roster for one month.
//
// The clinical profile with Genetic set runs the genetic controller, everything else the
// Monte Carlo controller. A zero Config.Seed is replaced by a random seed, which is
// reported in Result.Seed.
func Generate(ctx context.Context, in Input, opts ...Option) (*model.Result, error) {
	o := &generateOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	if !in.Config.Profile().IsValid() {
		return nil, fmt.Errorf("unknown profile %q", in.Config.Profile())
	}

	seed := resolveSeed(in.Config.Seed)
	in.Config.Seed = seed
	engine := NewEngine(in, o.logger)

	if clinical := in.Config.Clinical(); clinical != nil && clinical.Genetic {
		outcome, err := engine.RunGenetic(ctx, GeneticOptionsFrom(clinical), seed, in.Config.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to run genetic controller: %w", err)
		}
		return outcome.Best, nil
	}

	res, err := engine.RunMonteCarlo(ctx, in.Config.MaxRetries, seed, in.Config.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to run monte carlo controller: %w", err)
	}
	return res, nil
}
