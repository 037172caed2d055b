// Package prediction orchestrates the forecast pipeline: fetch the input
// day's weather, encode it into a task feature vector, scale it, and run the
// task's model.
package prediction

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"raincast/internal/artifacts"
	"raincast/internal/features"
	"raincast/internal/types"
	"raincast/internal/weather"
)

const (
	// rainHorizonDays is how far ahead the rain classifier predicts.
	rainHorizonDays = 7

	// precipWindowStart/End bound the cumulative precipitation window,
	// in days after the input date.
	precipWindowStart = 1
	precipWindowEnd   = 3
)

// ArtifactSource yields ready-to-use model artifacts per task.
type ArtifactSource interface {
	Get(ctx context.Context, task types.Task) (*artifacts.Artifact, error)
}

// Summary bundles both task results for the same input date.
type Summary struct {
	Rain          *types.RainResult
	Precipitation *types.PrecipitationResult
}

// Service runs the prediction pipeline for both tasks.
type Service struct {
	weather   weather.Source
	artifacts ArtifactSource
	logger    *slog.Logger
}

// NewService creates a prediction service.
func NewService(source weather.Source, artifactSource ArtifactSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		weather:   source,
		artifacts: artifactSource,
		logger:    logger,
	}
}

// PredictRain classifies whether it will rain seven days after inputDate.
// The decision threshold is inclusive: a probability exactly at the threshold
// classifies as rain.
func (s *Service) PredictRain(ctx context.Context, inputDate types.CivilDate) (*types.RainResult, error) {
	artifact, err := s.artifacts.Get(ctx, types.TaskRain)
	if err != nil {
		return nil, err
	}

	obs, err := s.weather.FetchObservation(ctx, inputDate)
	if err != nil {
		return nil, err
	}

	vector := features.EncodeRain(obs, inputDate)
	scaled, err := artifact.Scaler.Transform(vector[:])
	if err != nil {
		return nil, err
	}

	probability, err := artifact.Model.Infer(scaled)
	if err != nil {
		return nil, err
	}

	result := &types.RainResult{
		InputDate:   inputDate,
		TargetDate:  inputDate.AddDays(rainHorizonDays),
		WillRain:    probability >= artifact.Threshold,
		Probability: probability,
	}

	s.logger.InfoContext(ctx, "rain prediction computed",
		"input_date", result.InputDate.String(),
		"target_date", result.TargetDate.String(),
		"probability", result.Probability,
		"will_rain", result.WillRain,
	)

	return result, nil
}

// PredictPrecipitation estimates cumulative precipitation over the three days
// following inputDate. Negative regression outputs are clamped to zero.
func (s *Service) PredictPrecipitation(ctx context.Context, inputDate types.CivilDate) (*types.PrecipitationResult, error) {
	artifact, err := s.artifacts.Get(ctx, types.TaskPrecipitation)
	if err != nil {
		return nil, err
	}

	obs, err := s.weather.FetchObservation(ctx, inputDate)
	if err != nil {
		return nil, err
	}

	vector := features.EncodePrecipitation(obs, inputDate)
	scaled, err := artifact.Scaler.Transform(vector[:])
	if err != nil {
		return nil, err
	}

	amount, err := artifact.Model.Infer(scaled)
	if err != nil {
		return nil, err
	}

	result := &types.PrecipitationResult{
		InputDate: inputDate,
		StartDate: inputDate.AddDays(precipWindowStart),
		EndDate:   inputDate.AddDays(precipWindowEnd),
		AmountMM:  math.Max(amount, 0),
	}

	s.logger.InfoContext(ctx, "precipitation prediction computed",
		"input_date", result.InputDate.String(),
		"start_date", result.StartDate.String(),
		"end_date", result.EndDate.String(),
		"amount_mm", result.AmountMM,
	)

	return result, nil
}

// PredictSummary runs both tasks concurrently for the same input date. It
// returns the first error encountered, if any.
func (s *Service) PredictSummary(ctx context.Context, inputDate types.CivilDate) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.PredictRain(gctx, inputDate)
		if err != nil {
			return err
		}
		summary.Rain = result
		return nil
	})
	g.Go(func() error {
		result, err := s.PredictPrecipitation(gctx, inputDate)
		if err != nil {
			return err
		}
		summary.Precipitation = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &summary, nil
}

// Compile-time check that the artifact cache satisfies ArtifactSource.
var _ ArtifactSource = (*artifacts.Cache)(nil)
