package usecase

import (
	"sort"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Categorize normalizes records, splits them into exact matches and
// alternatives, and assigns each bucket its own price tiers. Records keep
// their input order within each bucket; the tier is metadata only.
//
// A record is an exact match when its title matches a candidate brand and,
// if the query named a size and the record has a detected weight, that size
// agrees. A sized query against an unsized product demotes it to an alternative.
func Categorize(records []domain.RawRecord, potentialBrands []string, searchSize string) domain.CategorizedResults {
	results := domain.CategorizedResults{
		ExactMatches: []domain.CategorizedRecord{},
		Alternatives: []domain.CategorizedRecord{},
	}

	for _, r := range records {
		cr := normalizeRecord(r)

		exact := CheckBrandMatch(strings.ToLower(r.Title), potentialBrands)
		if exact && searchSize != "" {
			exact = cr.WeightInfo != nil && CompareSizes(cr.WeightInfo, searchSize)
		}

		if exact {
			cr.MatchClass = domain.MatchExact
			results.ExactMatches = append(results.ExactMatches, cr)
		} else {
			cr.MatchClass = domain.MatchAlternative
			results.Alternatives = append(results.Alternatives, cr)
		}
	}

	assignPriceCategories(results.ExactMatches)
	assignPriceCategories(results.Alternatives)
	return results
}

// normalizeRecord attaches the extracted attributes and unit economics
func normalizeRecord(r domain.RawRecord) domain.CategorizedRecord {
	title := strings.ToLower(r.Title)
	weight := ExtractWeight(title)
	pack := ExtractPackSize(title)
	features := ExtractFeatures(title)
	price, hasPrice := ParsePrice(r.Price)
	econ := ComputeEconomics(weight, pack, price, hasPrice)

	attrs := domain.Attributes{
		IndividualWeight:   econ.IndividualWeight,
		TotalWeight:        econ.TotalWeight,
		WeightUnit:         econ.WeightUnit,
		PackSize:           econ.PackSize,
		PriceValue:         price,
		HasPrice:           hasPrice,
		UnitPrice:          econ.UnitPrice,
		UnitPriceFormatted: econ.UnitPriceFormatted,
		Features:           features,
	}
	if weight != nil {
		attrs.Weight = weight.Text
	}

	return domain.CategorizedRecord{
		RawRecord:  r,
		WeightInfo: weight,
		PackInfo:   pack,
		Features:   features,
		Attributes: attrs,
	}
}

// assignPriceCategories ranks a bucket by effective price and tags each record:
// one item is cheapest, two are cheapest/expensive, otherwise first is cheapest,
// last is expensive and everything between is medium
func assignPriceCategories(bucket []domain.CategorizedRecord) {
	n := len(bucket)
	if n == 0 {
		return
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cheaper(&bucket[order[i]].Attributes, &bucket[order[j]].Attributes)
	})

	for pos, idx := range order {
		switch {
		case pos == 0:
			bucket[idx].PriceCategory = domain.PriceCheapest
		case pos == n-1:
			bucket[idx].PriceCategory = domain.PriceExpensive
		default:
			bucket[idx].PriceCategory = domain.PriceMedium
		}
	}
}

// cheaper compares by unit price when both records have one; a record with a
// unit price beats one without regardless of magnitude; otherwise the package
// prices decide, with missing prices last
func cheaper(a, b *domain.Attributes) bool {
	aUnit, bUnit := a.UnitPrice > 0, b.UnitPrice > 0
	switch {
	case aUnit && bUnit:
		return a.UnitPrice < b.UnitPrice
	case aUnit != bUnit:
		return aUnit
	default:
		return comparePrices(a.PriceValue, a.HasPrice, b.PriceValue, b.HasPrice)
	}
}
