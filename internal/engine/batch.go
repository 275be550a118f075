package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BarCut/internal/model"
)

// Options controls batch planning.
type Options struct {
	Workers int          // Profiles planned concurrently; values below 2 plan sequentially
	Logger  *slog.Logger // Defaults to slog.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// PlanJob plans every profile independently and returns one result per
// profile, in input order. A profile that fails validation carries its
// error and an empty plan; the others are unaffected. If ctx is cancelled
// no further profiles are started and ctx.Err() is returned.
func PlanJob(ctx context.Context, profiles []model.Profile, opts Options) ([]model.ProfileResult, error) {
	log := opts.logger()
	results := make([]model.ProfileResult, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, p := range profiles {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = planOne(p, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func planOne(p model.Profile, log *slog.Logger) model.ProfileResult {
	if p.ExceedsMaxBarLength() {
		log.Warn("bar length exceeds maximum",
			"profile", p.Code,
			"bar_length_mm", p.BarLength,
			"max_mm", model.MaxBarLengthMM)
	}

	plan, err := Plan(p)
	if err != nil {
		log.Warn("profile not planned", "profile", p.Code, "reason", ReasonOf(err), "error", err)
		return model.ProfileResult{Profile: p, Err: err}
	}

	log.Debug("profile planned",
		"profile", p.Code,
		"cuts", len(p.Cuts),
		"bars", len(plan.Bars),
		"efficiency_pct", plan.Efficiency)
	return model.ProfileResult{Profile: p, Plan: plan}
}
