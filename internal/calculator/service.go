package calculator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/metrics"
)

// Service orchestrates one calculation pass: validate, resolve, compute,
// annotate, compare. It admits one in-flight calculation at a time; a
// second submit is rejected rather than queued.
type Service struct {
	resolver   RouteRateSource
	pipeline   *Pipeline
	annotator  *Annotator
	comparator *Comparator
	history    *History
	metrics    *metrics.CalculatorMetrics
	log        *logger.Logger

	calculating atomic.Bool
	now         func() time.Time
}

// NewService wires the calculation stages together.
func NewService(
	cfg config.CalculatorConfig,
	resolver RouteRateSource,
	countries CountryNamer,
	mtr *metrics.CalculatorMetrics,
	log *logger.Logger,
) *Service {
	pipeline := NewPipeline(cfg)
	return &Service{
		resolver:   resolver,
		pipeline:   pipeline,
		annotator:  NewAnnotator(cfg),
		comparator: NewComparator(resolver, countries, pipeline, log),
		history:    NewHistory(cfg.HistoryLimit),
		metrics:    mtr,
		log:        log,
		now:        time.Now,
	}
}

// History exposes the bounded recent-calculation list.
func (s *Service) History() *History {
	return s.history
}

// Calculate runs the full pass and returns an immutable result. Stage
// order is fixed; any failure aborts before a partial result exists.
func (s *Service) Calculate(ctx context.Context, draft ProductInfo) (*TariffCalculation, error) {
	if !s.calculating.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeInFlight, "calculation already in progress")
	}
	defer s.calculating.Store(false)

	started := s.now()
	calc, err := s.run(ctx, draft)
	s.metrics.ObserveDuration("calculate", s.now().Sub(started))
	if err != nil {
		s.metrics.IncFailure("calculate")
		return nil, err
	}
	s.metrics.IncSuccess("calculate")

	s.history.Push(*calc)
	return calc, nil
}

func (s *Service) run(ctx context.Context, draft ProductInfo) (*TariffCalculation, error) {
	if fieldErrors := Validate(draft); len(fieldErrors) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft failed validation").
			WithDetails(fieldErrors)
	}

	snapshot := draft.Snapshot()

	resolved, err := s.resolver.Resolve(ctx, snapshot.OriginCountry, snapshot.DestinationCountry, snapshot.HsCode)
	if err != nil {
		return nil, err
	}

	results := s.pipeline.Compute(snapshot, resolved)

	warnings, compliance := s.annotator.Annotate(snapshot, results)
	results.Warnings = warnings
	results.Compliance = compliance

	routes, err := s.comparator.Compare(ctx, snapshot, results, resolved)
	if err != nil {
		return nil, err
	}
	results.AlternativeRoutes = routes

	calc := &TariffCalculation{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Product:   snapshot,
		Results:   results,
	}

	if s.log != nil {
		logCtx := s.log.WithCalculationID(ctx, calc.ID)
		s.log.Info(logCtx, "calculation completed")
	}
	return calc, nil
}
