package calculator

import (
	"context"
	"sort"

	"github.com/tariffsheriff/tariffsheriff-backend/internal/rates"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// RouteRateSource resolves rates for candidate origins.
type RouteRateSource interface {
	Resolve(ctx context.Context, originIso3, destinationIso3, hsCode string) (*rates.ResolvedRate, error)
	CandidateOrigins(ctx context.Context, destinationIso3, hsCode string) ([]string, error)
}

// CountryNamer maps ISO3 codes to display names.
type CountryNamer interface {
	CountryName(ctx context.Context, iso3 string) (string, error)
}

// Comparator re-costs the shipment from every alternative origin with a
// rate on file and ranks the outcomes by total cost.
type Comparator struct {
	source    RouteRateSource
	countries CountryNamer
	pipeline  *Pipeline
	log       *logger.Logger
}

// NewComparator builds a comparator over the given rate source.
func NewComparator(source RouteRateSource, countries CountryNamer, pipeline *Pipeline, log *logger.Logger) *Comparator {
	return &Comparator{source: source, countries: countries, pipeline: pipeline, log: log}
}

// indicative door-to-port transit estimates, in days, for display only
var transitDays = map[string]int{
	"MEX": 5,
	"CAN": 3,
	"CHN": 28,
	"JPN": 21,
	"KOR": 22,
	"DEU": 14,
	"VNM": 30,
}

// Compare evaluates every candidate origin other than the actual one. A
// candidate without rate data is skipped and logged; it never aborts the
// pass. A candidate whose rate is not better than the actual one is still
// reported, with zero savings.
func (c *Comparator) Compare(ctx context.Context, draft ProductInfo, results Results, actual *rates.ResolvedRate) ([]AlternativeRoute, error) {
	candidates, err := c.source.CandidateOrigins(ctx, draft.DestinationCountry, draft.HsCode)
	if err != nil {
		return nil, err
	}

	routes := make([]AlternativeRoute, 0, len(candidates))
	for _, origin := range candidates {
		if origin == draft.OriginCountry {
			continue
		}
		resolved, err := c.source.Resolve(ctx, origin, draft.DestinationCountry, draft.HsCode)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeRateNotFound) {
				if c.log != nil {
					c.log.Warn(c.log.WithField(ctx, "candidate_origin", origin), "skipping candidate origin without rate data")
				}
				continue
			}
			return nil, err
		}

		totalCost := c.pipeline.TotalFor(draft, resolved.Rate)
		savings := results.TotalCost - totalCost
		if savings < 0 || resolved.Rate >= actual.Rate {
			savings = 0
		}

		var savingsPercentage float64
		if savings > 0 && actual.Basis == enums.RateBasisMFN && results.TariffAmount > 0 {
			savingsPercentage = savings / results.TariffAmount * 100
		}

		name := origin
		if c.countries != nil {
			if resolvedName, err := c.countries.CountryName(ctx, origin); err == nil {
				name = resolvedName
			}
		}

		routes = append(routes, AlternativeRoute{
			Country:           origin,
			CountryName:       name,
			TariffRate:        resolved.Rate,
			TotalCost:         totalCost,
			Savings:           savings,
			SavingsPercentage: savingsPercentage,
			TradeAgreement:    resolved.TradeAgreement,
			TransitTimeDays:   transitDays[origin],
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].TotalCost < routes[j].TotalCost
	})
	return routes, nil
}
