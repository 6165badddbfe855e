package evaluator

import (
	"context"
	"fmt"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/services/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Concurrency bounds the number of regions computed at once; values
	// below 2 evaluate sequentially.
	Concurrency int
}

type Evaluator struct {
	registries domain.Registries
	options    Options
}

func NewEvaluator(registries domain.Registries, opts Options) *Evaluator {
	return &Evaluator{registries: registries, options: opts}
}

// Regions lists the region identifiers known to the demographics registry.
func (e *Evaluator) Regions() []string {
	return e.registries.Regions()
}

// Run dispatches to Evaluate or EvaluateConcurrent according to Options.
func (e *Evaluator) Run(ctx context.Context, regionIDs []string) (*domain.SummaryBatch, error) {
	if e.options.Concurrency > 1 {
		return e.EvaluateConcurrent(ctx, regionIDs)
	}
	return e.Evaluate(ctx, regionIDs)
}

// Evaluate computes summaries for regionIDs in order. The first failure
// aborts the batch and no partial result is returned.
func (e *Evaluator) Evaluate(ctx context.Context, regionIDs []string) (*domain.SummaryBatch, error) {
	summaries := make([]domain.FinancialSummary, 0, len(regionIDs))
	for _, region := range regionIDs {
		summary, err := e.evaluateRegion(ctx, region)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return domain.NewSummaryBatch(summaries...), nil
}

// EvaluateConcurrent has the same contract as Evaluate. When several regions
// fail, the error of the earliest one in regionIDs is returned.
func (e *Evaluator) EvaluateConcurrent(ctx context.Context, regionIDs []string) (*domain.SummaryBatch, error) {
	summaries := make([]domain.FinancialSummary, len(regionIDs))
	errs := make([]error, len(regionIDs))

	g, gctx := errgroup.WithContext(ctx)
	if e.options.Concurrency > 0 {
		g.SetLimit(e.options.Concurrency)
	}

	for i, region := range regionIDs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			summary, err := e.evaluateRegion(gctx, region)
			if err != nil {
				errs[i] = err
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, regionErr := range errs {
			if regionErr != nil {
				return nil, regionErr
			}
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return domain.NewSummaryBatch(summaries...), nil
}

func (e *Evaluator) evaluateRegion(ctx context.Context, region string) (domain.FinancialSummary, error) {
	logger := zerolog.Ctx(ctx)

	demographics, ok := e.registries.Demographics[region]
	if !ok {
		return domain.FinancialSummary{}, &domain.MissingRegionDataError{Region: region, Registry: domain.RegistryDemographics}
	}
	density, ok := e.registries.Density[region]
	if !ok {
		return domain.FinancialSummary{}, &domain.MissingRegionDataError{Region: region, Registry: domain.RegistryBusiness}
	}
	assumptions, ok := e.registries.Assumptions[region]
	if !ok {
		return domain.FinancialSummary{}, &domain.MissingRegionDataError{Region: region, Registry: domain.RegistryAssumptions}
	}

	summary, err := metrics.ComputeSummary(region, demographics, density, assumptions)
	if err != nil {
		return domain.FinancialSummary{}, fmt.Errorf("evaluate %s: %w", region, err)
	}

	logger.Debug().
		Str("region", region).
		Float64("profit", summary.Profit).
		Str("profitability_tier", string(summary.ProfitabilityTier)).
		Msg("region evaluated")

	return summary, nil
}
