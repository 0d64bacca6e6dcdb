package source

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Keys probed, in order, when looking for listing fields in a JSON document
var (
	titleKeys = []string{"title", "name", "productName", "displayName"}
	priceKeys = []string{"price", "sellingPrice", "offerPrice", "finalPrice", "mrp"}
	linkKeys  = []string{"url", "link", "productUrl", "href"}
)

// ExtractRecords walks an arbitrary decoded JSON document and returns every
// object that looks like a listing: a title-like key plus a price-like key.
// Relative links are resolved against sourceURL. Map keys are visited in
// sorted order so the output is stable.
func ExtractRecords(doc interface{}, platform domain.Platform, sourceURL string) []domain.RawRecord {
	base, _ := url.Parse(sourceURL)

	records := []domain.RawRecord{}
	walk(doc, func(obj map[string]interface{}) bool {
		title := pickString(obj, titleKeys...)
		price := pickPrice(obj)
		if title == "" || price == "" {
			return false
		}

		records = append(records, domain.RawRecord{
			Platform: platform,
			Title:    normalizeText(title),
			Price:    normalizeText(price),
			Link:     resolveLink(base, pickString(obj, linkKeys...)),
		})
		return true
	})
	return records
}

// walk visits every object depth-first; fn returning true stops descent
// into that object
func walk(v interface{}, fn func(map[string]interface{}) bool) {
	switch node := v.(type) {
	case map[string]interface{}:
		if fn(node) {
			return
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walk(node[k], fn)
		}
	case []interface{}:
		for _, item := range node {
			walk(item, fn)
		}
	}
}

func pickString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// pickPrice accepts prices sent as strings ("₹1,299") or as JSON numbers
func pickPrice(obj map[string]interface{}, keys ...string) string {
	if len(keys) == 0 {
		keys = priceKeys
	}
	for _, k := range keys {
		switch p := obj[k].(type) {
		case string:
			if strings.TrimSpace(p) != "" {
				return p
			}
		case float64:
			return strconv.FormatFloat(p, 'f', -1, 64)
		case map[string]interface{}:
			if nested := pickPrice(p, "value", "amount", "current"); nested != "" {
				return nested
			}
		}
	}
	return ""
}

// resolveLink makes a link absolute against the source; links that cannot
// be resolved are returned as-is and rejected later by validation
func resolveLink(base *url.URL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || base == nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if base.Host == "" {
		return link
	}
	return base.ResolveReference(ref).String()
}

// normalizeText applies NFKC so non-breaking spaces and full-width digits
// become plain ASCII, then collapses whitespace
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
