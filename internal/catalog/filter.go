package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noorcaftan/boutique-backend/internal/product"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
)

// Criteria describes a catalog query. Zero values mean "no constraint".
type Criteria struct {
	// Search matches name/nameEn/description/descriptionEn/tags,
	// case-insensitively.
	Search string
	// Featured, when set, requires the flag to match exactly.
	Featured *bool
	// Tags passes a product carrying any one of the listed tags.
	Tags []string
	// MinPrice/MaxPrice filter on the numeric part of the display price.
	// Products whose price does not parse pass the filter: price filtering
	// is best-effort, never authoritative.
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
}

// Filter runs the criteria over the current snapshot. Pure: no network, no
// mutation; the result is a fresh slice.
func (c *Catalog) Filter(criteria Criteria) []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]product.Product, 0, len(c.products))
	for _, p := range c.products {
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if criteria.Featured != nil && p.Featured != *criteria.Featured {
			continue
		}
		if len(criteria.Tags) > 0 && !matchesAnyTag(p, criteria.Tags) {
			continue
		}
		if criteria.MinPrice != nil || criteria.MaxPrice != nil {
			if price, ok := parsePrice(p.Price); ok {
				if criteria.MinPrice != nil && price < *criteria.MinPrice {
					continue
				}
				if criteria.MaxPrice != nil && price > *criteria.MaxPrice {
					continue
				}
			}
		}
		out = append(out, p)
	}

	sortProducts(out, criteria.Sort)
	return out
}

func matchesAnyTag(p product.Product, tags []string) bool {
	for _, want := range tags {
		for _, t := range p.Tags {
			if strings.EqualFold(t, want) {
				return true
			}
		}
		for _, t := range p.TagsEn {
			if strings.EqualFold(t, want) {
				return true
			}
		}
	}
	return false
}

// parsePrice extracts the numeric part of a free-form display price such as
// "150 د.ك". Returns false when no digits are present (including the empty
// "price on request" sentinel).
func parsePrice(display string) (float64, bool) {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// priceOrZero is the sort-side view of a price: anything unparseable counts
// as zero so sorting never fails on free-form values.
func priceOrZero(display string) float64 {
	v, ok := parsePrice(display)
	if !ok {
		return 0
	}
	return v
}

func sortProducts(products []product.Product, key SortKey) {
	switch key {
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Views > products[j].Views
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOrZero(products[i].Price) < priceOrZero(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return priceOrZero(products[i].Price) > priceOrZero(products[j].Price)
		})
	default:
		// newest first; createdAt is RFC3339 so string order is time order
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt > products[j].CreatedAt
		})
	}
}
