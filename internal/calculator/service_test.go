package calculator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tariffsheriff/tariffsheriff-backend/internal/rates"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
)

type blockingRouteSource struct {
	fakeRouteSource
	block chan struct{}
	once  sync.Once
}

func (b *blockingRouteSource) Resolve(ctx context.Context, originIso3, destinationIso3, hsCode string) (*rates.ResolvedRate, error) {
	if b.block != nil {
		b.once.Do(func() { <-b.block })
	}
	return b.fakeRouteSource.Resolve(ctx, originIso3, destinationIso3, hsCode)
}

func newTestService(source RouteRateSource) *Service {
	return NewService(testCalcConfig(), source, nil, nil, nil)
}

func routeSourceForDraft() *fakeRouteSource {
	return &fakeRouteSource{
		origins: []string{"MEX", "KOR"},
		rates: map[string]*rates.ResolvedRate{
			"MEX": {Rate: 0.08, Basis: enums.RateBasisPref, RuleID: "USA-87038010-2026", TradeAgreement: "USMCA", Confidence: 0.95},
			"KOR": {Rate: 0.04, Basis: enums.RateBasisPref, TradeAgreement: "KORUS", Confidence: 0.95},
		},
	}
}

func TestCalculateProducesImmutableResult(t *testing.T) {
	service := newTestService(routeSourceForDraft())
	draft := validDraft()
	draft.Certificates = []string{"CO-2026-001"}

	calc, err := service.Calculate(context.Background(), draft)
	if err != nil {
		t.Fatalf("expected calculation, got %v", err)
	}
	if calc.ID == "" {
		t.Fatal("expected generated id")
	}
	if calc.Results.TotalCost <= calc.Results.DutiableValue {
		t.Fatalf("expected charges above dutiable value, got %v", calc.Results.TotalCost)
	}

	// Later edits to the submitted draft must not reach the snapshot.
	draft.Certificates[0] = "tampered"
	if calc.Product.Certificates[0] != "CO-2026-001" {
		t.Fatal("result shares storage with the live draft")
	}

	if service.History().Len() != 1 {
		t.Fatalf("expected one history entry, got %d", service.History().Len())
	}
}

func TestCalculateRejectsInvalidDraft(t *testing.T) {
	service := newTestService(routeSourceForDraft())
	draft := validDraft()
	draft.HsCode = "abc"

	calc, err := service.Calculate(context.Background(), draft)
	if calc != nil {
		t.Fatalf("expected no partial result, got %+v", calc)
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(FieldErrors)
	if !ok {
		t.Fatalf("expected field errors in details, got %T", pkgerrors.As(err).Details())
	}
	if _, present := details["hsCode"]; !present {
		t.Fatalf("expected hsCode detail, got %v", details)
	}
	if service.History().Len() != 0 {
		t.Fatal("failed calculation must not enter history")
	}
}

func TestCalculateSurfacesRateNotFound(t *testing.T) {
	service := newTestService(&fakeRouteSource{origins: []string{}})

	calc, err := service.Calculate(context.Background(), validDraft())
	if calc != nil {
		t.Fatalf("expected no partial result, got %+v", calc)
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeRateNotFound) {
		t.Fatalf("expected rate-not-found, got %v", err)
	}
}

func TestCalculateRejectsConcurrentSubmit(t *testing.T) {
	source := &blockingRouteSource{
		fakeRouteSource: *routeSourceForDraft(),
		block:           make(chan struct{}),
	}
	service := newTestService(source)

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Calculate(context.Background(), validDraft())
		firstDone <- err
	}()

	// Wait for the first calculation to claim the guard.
	deadline := time.After(2 * time.Second)
	for !service.calculating.Load() {
		select {
		case <-deadline:
			t.Fatal("first calculation never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	_, err := service.Calculate(context.Background(), validDraft())
	if !pkgerrors.IsCode(err, pkgerrors.CodeInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}

	close(source.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("expected first calculation to finish, got %v", err)
	}
}
