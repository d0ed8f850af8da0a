package dto

import (
	"time"

	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/helpers"
)

// CourseResponse represents a course in API responses
type CourseResponse struct {
	ID              int64            `json:"id" example:"1"`
	Title           string           `json:"title" example:"Full Stack Web Development Bootcamp"`
	Description     string           `json:"description"`
	LongDescription string           `json:"longDescription,omitempty"`
	Category        string           `json:"category" example:"Web Development"`
	Teacher         models.Teacher   `json:"teacher"`
	Price           Money            `json:"price"`
	OriginalPrice   *Money           `json:"originalPrice,omitempty"`
	Rating          float64          `json:"rating" example:"4.8"`
	Students        int64            `json:"students" example:"3245"`
	Duration        string           `json:"duration,omitempty" example:"48 hours"`
	LastUpdated     string           `json:"lastUpdated,omitempty" example:"March 2023"`
	Level           models.Level     `json:"level,omitempty" example:"Intermediate"`
	Chapters        []models.Chapter `json:"chapters,omitempty"`
}

// CourseListResponse is one page of a catalog query
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FacetsResponse lists the available filter values
type FacetsResponse struct {
	Categories   []string       `json:"categories"`
	Universities []string       `json:"universities"`
	Levels       []models.Level `json:"levels"`
	SortKeys     []string       `json:"sortKeys"`
}

// ChapterRequest is one chapter of an uploaded course
type ChapterRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Duration string `json:"duration" validate:"max=50"`
}

// CreateCourseRequest is a teacher's course upload
type CreateCourseRequest struct {
	TeacherID       int64            `json:"teacherId" validate:"required,gt=0"`
	Title           string           `json:"title" validate:"required,max=255"`
	Description     string           `json:"description" validate:"required"`
	LongDescription string           `json:"longDescription"`
	Category        string           `json:"category" validate:"required,max=100"`
	Department      string           `json:"department" validate:"max=255"`
	Price           string           `json:"price" validate:"required,numeric" example:"4499.25"`
	OriginalPrice   string           `json:"originalPrice" validate:"omitempty,numeric"`
	Duration        string           `json:"duration" validate:"max=50"`
	LastUpdated     string           `json:"lastUpdated" example:"March 2023"`
	Level           string           `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Chapters        []ChapterRequest `json:"chapters" validate:"dive"`
}

// ToModel converts the request into a course. Prices with more than two
// decimal places are rejected.
func (r *CreateCourseRequest) ToModel(cur *currency.Currency) (*models.Course, error) {
	price, err := cur.Parse(r.Price)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Category:        r.Category,
		Teacher:         models.Teacher{Department: r.Department},
		Price:           price,
		Duration:        r.Duration,
		LastUpdated:     helpers.ParseLastUpdated(r.LastUpdated),
		Level:           models.Level(r.Level),
	}

	if r.OriginalPrice != "" {
		op, err := cur.Parse(r.OriginalPrice)
		if err != nil {
			return nil, err
		}
		course.OriginalPrice = &op
	}

	if course.LastUpdated == nil {
		now := time.Now().UTC()
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		course.LastUpdated = &month
	}

	for _, ch := range r.Chapters {
		course.Chapters = append(course.Chapters, models.Chapter{Title: ch.Title, Duration: ch.Duration})
	}

	return course, nil
}

// FromCourse converts a course for display
func FromCourse(cur *currency.Currency, c models.Course) CourseResponse {
	resp := CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		LongDescription: c.LongDescription,
		Category:        c.Category,
		Teacher:         c.Teacher,
		Price:           NewMoney(cur, c.Price),
		Rating:          c.Rating,
		Students:        c.Students,
		Duration:        c.Duration,
		LastUpdated:     helpers.FormatLastUpdated(c.LastUpdated),
		Level:           c.Level,
		Chapters:        c.Chapters,
	}
	if c.OriginalPrice != nil {
		op := NewMoney(cur, *c.OriginalPrice)
		resp.OriginalPrice = &op
	}
	return resp
}

// FromCourses converts a list of courses for display
func FromCourses(cur *currency.Currency, courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, FromCourse(cur, c))
	}
	return out
}

// FromFacets converts catalog facets for display
func FromFacets(f catalog.Facets) FacetsResponse {
	return FacetsResponse{
		Categories:   f.Categories,
		Universities: f.Universities,
		Levels:       f.Levels,
		SortKeys: []string{
			string(catalog.SortPopularity),
			string(catalog.SortNewest),
			string(catalog.SortPriceAsc),
			string(catalog.SortPriceDesc),
			string(catalog.SortRating),
		},
	}
}
