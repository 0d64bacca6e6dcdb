package domain

import "time"

// Platform identifies an e-commerce or quick-commerce storefront
type Platform string

const (
	PlatformAmazon    Platform = "amazon"
	PlatformFlipkart  Platform = "flipkart"
	PlatformBlinkit   Platform = "blinkit"
	PlatformZepto     Platform = "zepto"
	PlatformInstamart Platform = "instamart"
	PlatformBigBasket Platform = "bigbasket"
	PlatformJioMart   Platform = "jiomart"
)

// KnownPlatforms lists every platform a source adapter can be configured for
var KnownPlatforms = []Platform{
	PlatformAmazon,
	PlatformFlipkart,
	PlatformBlinkit,
	PlatformZepto,
	PlatformInstamart,
	PlatformBigBasket,
	PlatformJioMart,
}

// IsKnownPlatform reports whether name is one of KnownPlatforms
func IsKnownPlatform(name string) bool {
	for _, p := range KnownPlatforms {
		if string(p) == name {
			return true
		}
	}
	return false
}

// RawRecord is one listing as produced by a source adapter, before normalization
type RawRecord struct {
	Platform Platform `json:"platform"`
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Link     string   `json:"link"`
}

// WeightMatch is a weight or volume detected in free text
type WeightMatch struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // kg, g, gm, gram, ml, l, liter or litre
	Text  string  `json:"text"`
}

// PackMatch is a multi-pack count detected in free text
type PackMatch struct {
	Count int    `json:"count"`
	Text  string `json:"text"`
}

// Attributes are derived from a record's title and price during normalization
type Attributes struct {
	Weight             string   `json:"weight,omitempty"`
	IndividualWeight   float64  `json:"individualWeight"`
	TotalWeight        float64  `json:"totalWeight"`
	WeightUnit         string   `json:"weightUnit,omitempty"` // "g" or "ml"
	PackSize           int      `json:"packSize,omitempty"`
	PriceValue         float64  `json:"priceValue"`
	HasPrice           bool     `json:"hasPrice"`
	UnitPrice          float64  `json:"unitPrice"`
	UnitPriceFormatted string   `json:"unitPriceFormatted,omitempty"`
	Features           []string `json:"features"`
}

// PriceCategory is the price tier assigned within a bucket
type PriceCategory string

const (
	PriceCheapest  PriceCategory = "cheapest"
	PriceMedium    PriceCategory = "medium"
	PriceExpensive PriceCategory = "expensive"
)

// MatchClass is the bucket a record is assigned to
type MatchClass string

const (
	MatchExact       MatchClass = "exact"
	MatchAlternative MatchClass = "alternative"
)

// CategorizedRecord is a raw record with its derived attributes and classification
type CategorizedRecord struct {
	RawRecord
	WeightInfo    *WeightMatch  `json:"weightInfo"`
	PackInfo      *PackMatch    `json:"packInfo"`
	Features      []string      `json:"features"`
	Attributes    Attributes    `json:"attributes"`
	PriceCategory PriceCategory `json:"priceCategory"`
	MatchClass    MatchClass    `json:"matchClass"`
}

// SearchContext is derived once per query and never persisted
type SearchContext struct {
	PotentialBrands []string `json:"potentialBrands"`
	SearchSize      string   `json:"searchSize,omitempty"`
}

// CategorizedResults is the output of the categorization pipeline
type CategorizedResults struct {
	ExactMatches []CategorizedRecord `json:"exactMatches"`
	Alternatives []CategorizedRecord `json:"alternatives"`
}

// SearchResponse is what the transport layer serializes for a query
type SearchResponse struct {
	Query          string              `json:"query"`
	Context        SearchContext       `json:"context"`
	ExactMatches   []CategorizedRecord `json:"exactMatches"`
	Alternatives   []CategorizedRecord `json:"alternatives"`
	PlatformCounts map[Platform]int    `json:"platformCounts"`
	TotalResults   int                 `json:"totalResults"`
	Source         string              `json:"source"` // "live", "cache" or "request"
	CachedAt       time.Time           `json:"cachedAt,omitempty"`
}
