package usecase

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

func TestCompareSizes(t *testing.T) {
	tests := []struct {
		name       string
		product    *domain.WeightMatch
		searchSize string
		want       bool
	}{
		{"same weight", &domain.WeightMatch{Value: 100, Unit: "g"}, "100g", true},
		{"weight unit spellings", &domain.WeightMatch{Value: 100, Unit: "g"}, "100 gm", true},
		{"same volume", &domain.WeightMatch{Value: 500, Unit: "ml"}, "500ml", true},
		{"litre spellings", &domain.WeightMatch{Value: 1, Unit: "l"}, "1 litre", true},
		{"within tolerance", &domain.WeightMatch{Value: 100.05, Unit: "g"}, "100g", true},
		{"outside tolerance", &domain.WeightMatch{Value: 100.2, Unit: "g"}, "100g", false},
		{"volume against weight", &domain.WeightMatch{Value: 2, Unit: "l"}, "2kg", false},
		{"written values differ", &domain.WeightMatch{Value: 1, Unit: "l"}, "1000ml", false},
		{"no size in search text", &domain.WeightMatch{Value: 100, Unit: "g"}, "large", false},
		{"no product size", nil, "100g", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareSizes(tt.product, tt.searchSize); got != tt.want {
				t.Errorf("CompareSizes(%+v, %q) = %v, want %v", tt.product, tt.searchSize, got, tt.want)
			}
		})
	}
}
