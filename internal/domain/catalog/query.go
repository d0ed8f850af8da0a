// Package catalog filters and orders the course catalog. Everything here is a
// pure function over an in-memory course list.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
)

// SortKey selects the order of a query result
type SortKey string

const (
	// SortNone keeps the input order
	SortNone       SortKey = ""
	SortPopularity SortKey = "popularity"
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRating     SortKey = "rating"
)

// sortAliases are the names the storefront dropdown historically sent
var sortAliases = map[string]SortKey{
	"popular":    SortPopularity,
	"price-low":  SortPriceAsc,
	"price-high": SortPriceDesc,
}

// ParseSortKey maps user input onto a SortKey. Unknown keys yield SortNone.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	switch key := SortKey(s); key {
	case SortPopularity, SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return key
	}
	if key, ok := sortAliases[s]; ok {
		return key
	}
	return SortNone
}

// PriceRange is an inclusive range in base currency units
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether price lies within the range, bounds included
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// FilterSpec describes one catalog query. Zero values disable a dimension;
// a nil PriceRange disables the price filter while [0,0] only admits free courses.
type FilterSpec struct {
	SearchText   string
	Categories   []string
	Universities []string
	Levels       []models.Level
	PriceRange   *PriceRange
	MinRating    float64
	SortKey      SortKey
}

// Query returns the courses matching every active predicate of spec, ordered
// by spec.SortKey. The input slice is never modified.
func Query(courses []models.Course, spec FilterSpec) []models.Course {
	m := newMatcher(spec)

	result := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		if m.match(&c) {
			result = append(result, c)
		}
	}

	Sort(result, spec.SortKey)
	return result
}

// Sort orders courses in place by key. Ties keep their relative order.
func Sort(courses []models.Course, key SortKey) {
	var compare func(a, b models.Course) int

	switch key {
	case SortPopularity:
		compare = func(a, b models.Course) int { return cmp.Compare(b.Students, a.Students) }
	case SortNewest:
		compare = compareNewest
	case SortPriceAsc:
		compare = func(a, b models.Course) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		compare = func(a, b models.Course) int { return b.Price.Cmp(a.Price) }
	case SortRating:
		compare = func(a, b models.Course) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return
	}

	slices.SortStableFunc(courses, compare)
}

// compareNewest puts the most recently updated first. Undated courses are
// equal to each other and follow every dated course.
func compareNewest(a, b models.Course) int {
	switch {
	case a.LastUpdated == nil && b.LastUpdated == nil:
		return 0
	case a.LastUpdated == nil:
		return 1
	case b.LastUpdated == nil:
		return -1
	}
	return b.LastUpdated.Compare(*a.LastUpdated)
}

type matcher struct {
	search       string
	categories   []string
	universities []string
	levels       []string
	priceRange   *PriceRange
	minRating    float64
}

func newMatcher(spec FilterSpec) matcher {
	levels := make([]string, 0, len(spec.Levels))
	for _, l := range spec.Levels {
		levels = append(levels, string(l))
	}

	return matcher{
		search:       strings.ToLower(strings.TrimSpace(spec.SearchText)),
		categories:   normalizeSet(spec.Categories),
		universities: normalizeSet(spec.Universities),
		levels:       normalizeSet(levels),
		priceRange:   spec.PriceRange,
		minRating:    spec.MinRating,
	}
}

func (m matcher) match(c *models.Course) bool {
	if m.search != "" && !matchesSearch(c, m.search) {
		return false
	}
	if len(m.categories) > 0 && !containsFold(m.categories, c.Category) {
		return false
	}
	if len(m.universities) > 0 && !containsFold(m.universities, c.Teacher.University) {
		return false
	}
	if len(m.levels) > 0 && (c.Level == "" || !containsFold(m.levels, string(c.Level))) {
		return false
	}
	if m.priceRange != nil && !m.priceRange.Contains(c.Price) {
		return false
	}
	if m.minRating > 0 && c.Rating < m.minRating {
		return false
	}
	return true
}

func matchesSearch(c *models.Course, query string) bool {
	for _, field := range []string{c.Title, c.Description, c.Teacher.Name, c.Category} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// normalizeSet drops blank entries so that [""] behaves like an empty set
func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func containsFold(set []string, value string) bool {
	return slices.ContainsFunc(set, func(s string) bool { return strings.EqualFold(s, value) })
}
