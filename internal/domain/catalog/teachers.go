package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/yigit/edutech/internal/app/models"
)

// TeacherSummary aggregates the catalog courses credited to one teacher name
type TeacherSummary struct {
	Slug         string          `json:"slug"`
	Teacher      models.Teacher  `json:"teacher"`
	Universities []string        `json:"universities"`
	Categories   []string        `json:"categories"`
	CourseCount  int             `json:"courseCount"`
	Students     int64           `json:"students"`
	Rating       float64         `json:"rating"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TeacherSlug turns a teacher name into a stable url key: "José Pérez" becomes "jose-perez"
func TeacherSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(strings.ToLower(name)) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CourseRevenue is the gross a course has earned: price times enrolment
func CourseRevenue(c models.Course) decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(c.Students))
}

// Teachers groups the catalog by teacher name. The profile shown for a teacher
// is taken from their first course in catalog order. The directory is ordered
// by enrolment, most students first, then by name.
func Teachers(courses []models.Course) []TeacherSummary {
	bySlug := make(map[string]*TeacherSummary)
	order := make([]string, 0)
	ratings := make(map[string]float64)

	for _, c := range courses {
		slug := TeacherSlug(c.Teacher.Name)
		if slug == "" {
			continue
		}
		t, ok := bySlug[slug]
		if !ok {
			t = &TeacherSummary{
				Slug:         slug,
				Teacher:      c.Teacher,
				Universities: make([]string, 0, 1),
				Categories:   make([]string, 0, 1),
				Revenue:      decimal.Zero,
			}
			bySlug[slug] = t
			order = append(order, slug)
		}

		if u := c.Teacher.University; u != "" && !slices.Contains(t.Universities, u) {
			t.Universities = append(t.Universities, u)
		}
		if c.Category != "" && !slices.Contains(t.Categories, c.Category) {
			t.Categories = append(t.Categories, c.Category)
		}
		t.CourseCount++
		t.Students += c.Students
		t.Revenue = t.Revenue.Add(CourseRevenue(c))
		ratings[slug] += c.Rating
	}

	out := make([]TeacherSummary, 0, len(order))
	for _, slug := range order {
		t := bySlug[slug]
		t.Rating = math.Round(ratings[slug]/float64(t.CourseCount)*10) / 10
		slices.Sort(t.Categories)
		out = append(out, *t)
	}

	slices.SortStableFunc(out, func(a, b TeacherSummary) int {
		if c := cmp.Compare(b.Students, a.Students); c != 0 {
			return c
		}
		return strings.Compare(a.Teacher.Name, b.Teacher.Name)
	})
	return out
}

// TeacherProfile returns the summary of the teacher with the given slug and
// their courses, most enrolled first
func TeacherProfile(courses []models.Course, slug string) (TeacherSummary, []models.Course, bool) {
	slug = TeacherSlug(slug)
	if slug == "" {
		return TeacherSummary{}, nil, false
	}

	own := coursesBy(courses, slug)
	if len(own) == 0 {
		return TeacherSummary{}, nil, false
	}

	summary := Teachers(own)[0]
	Sort(own, SortPopularity)
	return summary, own, true
}

func coursesBy(courses []models.Course, slug string) []models.Course {
	own := make([]models.Course, 0)
	for _, c := range courses {
		if TeacherSlug(c.Teacher.Name) == slug {
			own = append(own, c)
		}
	}
	return own
}

// CourseStats is one row of a teacher dashboard
type CourseStats struct {
	Course  models.Course   `json:"course"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TeachingStats is a teacher's dashboard. Every catalog course is published,
// so PublishedCourses counts all of them.
type TeachingStats struct {
	PublishedCourses int             `json:"publishedCourses"`
	TotalStudents    int64           `json:"totalStudents"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	Courses          []CourseStats   `json:"courses"`
}

// StatsFor totals the courses credited to the named teacher, newest first
func StatsFor(courses []models.Course, name string) TeachingStats {
	stats := TeachingStats{TotalRevenue: decimal.Zero, Courses: make([]CourseStats, 0)}

	slug := TeacherSlug(name)
	if slug == "" {
		return stats
	}

	own := coursesBy(courses, slug)
	Sort(own, SortNewest)

	for _, c := range own {
		revenue := CourseRevenue(c)
		stats.PublishedCourses++
		stats.TotalStudents += c.Students
		stats.TotalRevenue = stats.TotalRevenue.Add(revenue)
		stats.Courses = append(stats.Courses, CourseStats{Course: c, Revenue: revenue})
	}
	return stats
}
