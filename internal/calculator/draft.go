package calculator

import (
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/enums"
)

// Dimensions describes the physical size of the shipment.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// ProductInfo is the mutable calculation draft. The editing client owns it
// until submission, at which point the service snapshots it by value into
// the immutable result.
type ProductInfo struct {
	Description        string           `json:"description"`
	HsCode             string           `json:"hsCode"`
	HsCodeDescription  string           `json:"hsCodeDescription,omitempty"`
	Category           string           `json:"category,omitempty"`
	Quantity           int              `json:"quantity"`
	UnitValue          float64          `json:"unitValue"`
	Currency           string           `json:"currency,omitempty"`
	Weight             float64          `json:"weight,omitempty"`
	WeightUnit         enums.WeightUnit `json:"weightUnit,omitempty"`
	Dimensions         Dimensions       `json:"dimensions,omitempty"`
	OriginCountry      string           `json:"originCountry"`
	DestinationCountry string           `json:"destinationCountry"`
	ShipmentDate       string           `json:"shipmentDate,omitempty"`
	// Incoterms is stored but does not adjust the dutiable value yet.
	Incoterms         string   `json:"incoterms,omitempty"`
	Certificates      []string `json:"certificates,omitempty"`
	SpecialConditions []string `json:"specialConditions,omitempty"`
}

// Snapshot returns a value copy of the draft with its slices detached, so
// later edits to the live draft cannot reach into a finished calculation.
func (p ProductInfo) Snapshot() ProductInfo {
	copied := p
	if p.Certificates != nil {
		copied.Certificates = append([]string(nil), p.Certificates...)
	}
	if p.SpecialConditions != nil {
		copied.SpecialConditions = append([]string(nil), p.SpecialConditions...)
	}
	return copied
}

// WeightKilograms converts the draft weight to the canonical unit used by
// the risk thresholds.
func (p ProductInfo) WeightKilograms() float64 {
	unit := p.WeightUnit
	if unit == "" {
		unit = enums.WeightUnitKg
	}
	return unit.Kilograms(p.Weight)
}
