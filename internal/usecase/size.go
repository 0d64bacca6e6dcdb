package usecase

import (
	"math"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// sizeTolerance is an absolute difference between the written values, not a ratio
const sizeTolerance = 0.1

var volumeUnits = map[string]bool{
	"l": true, "liter": true, "litre": true, "ml": true,
}

// CompareSizes reports whether a product's detected size agrees with the size
// written in the query. The written values must differ by less than 0.1 and
// both units must be volumes or both weights. Values are compared as written,
// so "1l" and "1000ml" do not match.
func CompareSizes(product *domain.WeightMatch, searchSize string) bool {
	if product == nil {
		return false
	}

	wanted := ExtractWeight(searchSize)
	if wanted == nil {
		zap.L().Debug("size comparison skipped: no size in search text",
			zap.String("search_size", searchSize),
		)
		return false
	}

	if math.Abs(product.Value-wanted.Value) >= sizeTolerance {
		return false
	}
	return isVolume(product.Unit) == isVolume(wanted.Unit)
}

func isVolume(unit string) bool {
	return volumeUnits[unit]
}
