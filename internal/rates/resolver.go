package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db/models"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

const (
	confidencePref = 0.95
	confidenceMFN  = 0.90
)

// RateSource is the persistence surface the resolver needs.
type RateSource interface {
	FindByRoute(ctx context.Context, importerIso3, originIso3, hsCode string) ([]models.TariffRate, error)
	ListOrigins(ctx context.Context, importerIso3, hsCode string) ([]string, error)
}

// ResolvedRate is the single duty rate selected for one calculation pass.
type ResolvedRate struct {
	Rate           float64
	Basis          enums.RateBasis
	RuleID         string
	TradeAgreement string
	RvcThreshold   float64
	Confidence     float64
	ValidFrom      *time.Time
	ValidTo        *time.Time
}

// Resolver picks the duty rate for an origin/destination/HS triple. It
// prefers the preferential rate when the granting agreement is active,
// otherwise falls back to MFN. It holds no state and is safe to call many
// times within one calculation pass.
type Resolver struct {
	source RateSource
	log    *logger.Logger
	now    func() time.Time
}

// NewResolver builds a resolver over the given rate source.
func NewResolver(source RateSource, log *logger.Logger) *Resolver {
	return &Resolver{source: source, log: log, now: time.Now}
}

// Resolve selects exactly one rate for the route. A route with no rate rows
// fails with CodeRateNotFound; it never defaults to zero.
func (r *Resolver) Resolve(ctx context.Context, originIso3, destinationIso3, hsCode string) (*ResolvedRate, error) {
	rows, err := r.source.FindByRoute(ctx, destinationIso3, originIso3, hsCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("load tariff rates (%s->%s hs=%s)", originIso3, destinationIso3, hsCode))
	}

	var mfn, pref *models.TariffRate
	for i := range rows {
		row := &rows[i]
		switch row.Basis {
		case enums.RateBasisMFN:
			mfn = row
		case enums.RateBasisPref:
			pref = row
		}
	}

	at := r.now().UTC()
	if pref != nil && r.agreementActive(pref.Agreement, at) && rateEffective(pref, at) {
		return r.build(pref, destinationIso3, hsCode, at), nil
	}
	if mfn != nil && rateEffective(mfn, at) {
		return r.build(mfn, destinationIso3, hsCode, at), nil
	}

	return nil, pkgerrors.New(pkgerrors.CodeRateNotFound,
		fmt.Sprintf("no tariff rate on file for %s->%s hs=%s", originIso3, destinationIso3, hsCode)).
		WithDetails(map[string]string{
			"origin":      originIso3,
			"destination": destinationIso3,
			"hsCode":      hsCode,
		})
}

// CandidateOrigins lists the origins worth evaluating as alternative routes:
// every origin with any rate on file for the destination/HS pair.
func (r *Resolver) CandidateOrigins(ctx context.Context, destinationIso3, hsCode string) ([]string, error) {
	origins, err := r.source.ListOrigins(ctx, destinationIso3, hsCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("list candidate origins (dest=%s hs=%s)", destinationIso3, hsCode))
	}
	return origins, nil
}

func (r *Resolver) build(row *models.TariffRate, destinationIso3, hsCode string, at time.Time) *ResolvedRate {
	resolved := &ResolvedRate{
		Rate:      row.AdValoremRate.InexactFloat64(),
		Basis:     row.Basis,
		RuleID:    RuleID(destinationIso3, hsCode, at.Year()),
		ValidFrom: row.ValidFrom,
		ValidTo:   row.ValidTo,
	}
	switch row.Basis {
	case enums.RateBasisPref:
		resolved.Confidence = confidencePref
	default:
		resolved.Confidence = confidenceMFN
	}
	if row.Agreement != nil {
		resolved.TradeAgreement = row.Agreement.Name
		resolved.RvcThreshold = row.Agreement.RvcThreshold.InexactFloat64()
	}
	return resolved
}

func (r *Resolver) agreementActive(agreement *models.Agreement, at time.Time) bool {
	if agreement == nil {
		return false
	}
	if agreement.Status != enums.AgreementStatusActive {
		return false
	}
	if agreement.EnteredIntoForce != nil && agreement.EnteredIntoForce.After(at) {
		return false
	}
	if agreement.ExpiresAt != nil && !agreement.ExpiresAt.After(at) {
		return false
	}
	return true
}

func rateEffective(row *models.TariffRate, at time.Time) bool {
	if row.ValidFrom != nil && row.ValidFrom.After(at) {
		return false
	}
	if row.ValidTo != nil && !row.ValidTo.After(at) {
		return false
	}
	return true
}

// RuleID derives the deterministic rule identifier for a destination, HS
// code, and year. The HS code contributes digits only.
func RuleID(destinationIso3, hsCode string, year int) string {
	return fmt.Sprintf("%s-%s-%d", destinationIso3, strings.ReplaceAll(hsCode, ".", ""), year)
}
