package catalog

import (
	"slices"

	"github.com/yigit/edutech/internal/app/models"
)

// Facets are the distinct values a filter sidebar can offer
type Facets struct {
	Categories   []string       `json:"categories"`
	Universities []string       `json:"universities"`
	Levels       []models.Level `json:"levels"`
}

// BuildFacets collects the distinct categories and universities of the catalog
// in alphabetical order. Levels follow difficulty order.
func BuildFacets(courses []models.Course) Facets {
	categories := make([]string, 0)
	universities := make([]string, 0)
	present := make(map[models.Level]bool)

	for _, c := range courses {
		if c.Category != "" && !slices.Contains(categories, c.Category) {
			categories = append(categories, c.Category)
		}
		if u := c.Teacher.University; u != "" && !slices.Contains(universities, u) {
			universities = append(universities, u)
		}
		if c.Level != "" {
			present[c.Level] = true
		}
	}

	slices.Sort(categories)
	slices.Sort(universities)

	levels := make([]models.Level, 0, len(models.Levels))
	for _, l := range models.Levels {
		if present[l] {
			levels = append(levels, l)
		}
	}

	return Facets{Categories: categories, Universities: universities, Levels: levels}
}

// Popular returns courses with more than minStudents enrolled, in input order
func Popular(courses []models.Course, minStudents int64) []models.Course {
	out := make([]models.Course, 0)
	for _, c := range courses {
		if c.Students > minStudents {
			out = append(out, c)
		}
	}
	return out
}

// TopRated returns courses rated at least minRating, in input order
func TopRated(courses []models.Course, minRating float64) []models.Course {
	return Query(courses, FilterSpec{MinRating: minRating})
}
