// Package calculator runs benefit calculations on behalf of the CLI and the
// HTTP server, recording them in history and metrics.
package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/internal/metrics"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"go.uber.org/zap"
)

// ErrNoHistory is returned by CalculateAndSave when the service has no history.
var ErrNoHistory = errors.New("history is not configured")

// Service wraps the benefit functions. The history and metrics dependencies
// are optional.
type Service struct {
	logger  *zap.Logger
	history *history.History
	metrics *metrics.Metrics
}

// NewService creates a Service.
func NewService(logger *zap.Logger, hist *history.History, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, history: hist, metrics: m}
}

// History returns the history the service saves to, or nil.
func (s *Service) History() *history.History {
	return s.history
}

// Calculate computes every benefit for params.
func (s *Service) Calculate(_ context.Context, params benefit.Params) benefit.Result {
	result := benefit.TotalBenefit(params)

	s.logger.Debug(fmt.Sprintf("calculated benefits for amount %.2f", params.Amount),
		zap.String("op", "calculator.Calculate"),
		zap.Float64("cashback", result.CashbackBenefit),
		zap.Float64("gracePeriod", result.GracePeriodBenefit),
		zap.Float64("discount", result.DiscountBenefit),
		zap.String("bestOption", string(result.BestOption)),
	)
	s.metrics.ObserveCalculation(string(result.BestOption))
	return result
}

// CalculateAndSave computes every benefit for params and saves the
// calculation to history.
func (s *Service) CalculateAndSave(ctx context.Context, params benefit.Params) (history.Entry, error) {
	if s.history == nil {
		return history.Entry{}, ErrNoHistory
	}

	result := s.Calculate(ctx, params)
	entry, err := s.history.Save(ctx, params, result)
	if err != nil {
		s.logger.Error("failed to save calculation",
			zap.String("op", "calculator.CalculateAndSave"),
			zap.Error(err),
		)
		return history.Entry{}, err
	}
	s.metrics.ObserveHistorySave()
	return entry, nil
}

// EffectiveAmount returns the purchase amount that earns exactly maxAmount
// of cashback at percentage. ok is false unless both inputs are positive.
func (s *Service) EffectiveAmount(_ context.Context, maxAmount, percentage float64) (float64, bool) {
	amount, ok := benefit.EffectiveAmount(maxAmount, percentage)
	s.metrics.ObserveEffectiveAmount(ok)

	if !ok {
		s.logger.Debug("effective amount requires positive inputs",
			zap.String("op", "calculator.EffectiveAmount"),
			zap.Float64("maxAmount", maxAmount),
			zap.Float64("percentage", percentage),
		)
		return 0, false
	}
	s.logger.Debug("effective amount computed",
		zap.String("op", "calculator.EffectiveAmount"),
		zap.Float64("maxAmount", maxAmount),
		zap.Float64("percentage", percentage),
		zap.Float64("effectiveAmount", amount),
	)
	return amount, true
}
