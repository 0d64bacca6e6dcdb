package usecase

import (
	"fmt"

	"github.com/pricelens/backend/internal/domain"
)

// Canonical units
const (
	unitGram       = "g"
	unitMilliliter = "ml"
)

// unitPriceBase is the quantity a unit price is quoted for
const unitPriceBase = 100.0

// canonicalUnits maps a detected unit to its canonical unit and multiplier
var canonicalUnits = map[string]struct {
	unit   string
	factor float64
}{
	"kg":    {unitGram, 1000},
	"g":     {unitGram, 1},
	"gm":    {unitGram, 1},
	"gram":  {unitGram, 1},
	"l":     {unitMilliliter, 1000},
	"liter": {unitMilliliter, 1000},
	"litre": {unitMilliliter, 1000},
	"ml":    {unitMilliliter, 1},
}

// Economics is the unit-economics part of a record's attributes
type Economics struct {
	IndividualWeight   float64
	TotalWeight        float64
	WeightUnit         string
	PackSize           int
	UnitPrice          float64
	UnitPriceFormatted string
}

// ComputeEconomics converts the detected weight to grams or milliliters,
// multiplies by the pack count and derives the price per 100 units.
// UnitPrice stays 0 when no weight was detected or the price is missing.
func ComputeEconomics(weight *domain.WeightMatch, pack *domain.PackMatch, price float64, hasPrice bool) Economics {
	var e Economics
	if pack != nil {
		e.PackSize = pack.Count
	}
	if weight == nil {
		return e
	}

	canonical, ok := canonicalUnits[weight.Unit]
	if !ok {
		return e
	}
	e.IndividualWeight = weight.Value * canonical.factor
	e.WeightUnit = canonical.unit

	e.TotalWeight = e.IndividualWeight
	if pack != nil {
		e.TotalWeight = e.IndividualWeight * float64(pack.Count)
	}

	if e.TotalWeight > 0 && hasPrice {
		e.UnitPrice = price / e.TotalWeight * unitPriceBase
		if e.UnitPrice > 0 {
			e.UnitPriceFormatted = fmt.Sprintf("%s/%s", FormatPrice(e.UnitPrice), unitLabel(e.WeightUnit))
		}
	}
	return e
}

// unitLabel is the display unit for a unit price
func unitLabel(canonicalUnit string) string {
	if canonicalUnit == unitMilliliter {
		return "100ml"
	}
	return "100g"
}
