package usecase

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// RemoveDuplicates keeps the first record for each lowercased title and raw
// price string, preserving input order. Prices are compared as written, so
// "₹499" and "₹499.00" stay distinct.
func RemoveDuplicates(records []domain.RawRecord) []domain.RawRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]domain.RawRecord, 0, len(records))

	for _, r := range records {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique
}

func dedupKey(r domain.RawRecord) string {
	return strings.ToLower(r.Title) + "\x00" + r.Price
}
