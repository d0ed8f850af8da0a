package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/repositories"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/cache"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/validation"
)

const (
	// PopularMinStudents is the enrolment a course needs to exceed to be listed as popular
	PopularMinStudents = 2000
	// TopRatedMinRating is the rating a course needs to be listed as top rated
	TopRatedMinRating = 4.8

	catalogCacheKey = "catalog:all"
)

// CatalogService defines the interface for catalog browsing and course uploads
type CatalogService interface {
	ListCourses(ctx context.Context, spec catalog.FilterSpec) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	Facets(ctx context.Context) (catalog.Facets, error)
	Popular(ctx context.Context) ([]models.Course, error)
	TopRated(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, teacherID int64, course *models.Course) (*models.Course, error)

	Teachers(ctx context.Context) ([]catalog.TeacherSummary, error)
	Teacher(ctx context.Context, slug string) (*catalog.TeacherSummary, []models.Course, error)
	TeachingStats(ctx context.Context, userID int64) (*catalog.TeachingStats, error)
}

type catalogServiceImpl struct {
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
	cache      cache.Cache
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewCatalogService creates a new catalog service. A nil cache disables caching.
func NewCatalogService(
	courseRepo repositories.ICourseRepository,
	userRepo repositories.IUserRepository,
	c cache.Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) CatalogService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &catalogServiceImpl{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		cache:      c,
		ttl:        ttl,
		logger:     logger,
	}
}

// allCourses loads the catalog, preferring the cached snapshot. Cache failures
// are logged and fall through to the database.
func (s *catalogServiceImpl) allCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.cache.GetJSON(ctx, catalogCacheKey, &courses)
	if err == nil {
		return courses, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("Catalog cache read failed")
	}

	courses, err = s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := s.cache.SetJSON(ctx, catalogCacheKey, courses, s.ttl); err != nil {
		s.logger.Warn().Err(err).Msg("Catalog cache write failed")
	}
	return courses, nil
}

// ListCourses runs a catalog query over the whole catalog
func (s *catalogServiceImpl) ListCourses(ctx context.Context, spec catalog.FilterSpec) ([]models.Course, error) {
	if r := spec.PriceRange; r != nil && r.Min.GreaterThan(r.Max) {
		return nil, fmt.Errorf("%w: minimum price exceeds maximum price", apperrors.ErrValidationFailed)
	}
	if spec.MinRating < 0 || spec.MinRating > 5 {
		return nil, fmt.Errorf("%w: minimum rating must be between 0 and 5", apperrors.ErrValidationFailed)
	}

	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Query(courses, spec), nil
}

// GetCourse retrieves a course by ID
func (s *catalogServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Facets returns the filter values present in the catalog
func (s *catalogServiceImpl) Facets(ctx context.Context) (catalog.Facets, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return catalog.Facets{}, err
	}
	return catalog.BuildFacets(courses), nil
}

// Popular lists well enrolled courses, most enrolled first
func (s *catalogServiceImpl) Popular(ctx context.Context) ([]models.Course, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	popular := catalog.Popular(courses, PopularMinStudents)
	catalog.Sort(popular, catalog.SortPopularity)
	return popular, nil
}

// TopRated lists highly rated courses, best first
func (s *catalogServiceImpl) TopRated(ctx context.Context) ([]models.Course, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	top := catalog.TopRated(courses, TopRatedMinRating)
	catalog.Sort(top, catalog.SortRating)
	return top, nil
}

// Teachers lists everyone credited with a catalog course, most students first
func (s *catalogServiceImpl) Teachers(ctx context.Context) ([]catalog.TeacherSummary, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Teachers(courses), nil
}

// Teacher returns one teacher's summary and courses
func (s *catalogServiceImpl) Teacher(ctx context.Context, slug string) (*catalog.TeacherSummary, []models.Course, error) {
	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary, own, ok := catalog.TeacherProfile(courses, slug)
	if !ok {
		return nil, nil, apperrors.NewResourceNotFoundError("Teacher not found")
	}
	return &summary, own, nil
}

// TeachingStats totals the courses a teacher account is credited with. Courses
// are matched on the account's full name.
func (s *catalogServiceImpl) TeachingStats(ctx context.Context, userID int64) (*catalog.TeachingStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleTeacher {
		return nil, apperrors.NewForbiddenError("only teachers have a teaching dashboard")
	}

	courses, err := s.allCourses(ctx)
	if err != nil {
		return nil, err
	}

	stats := catalog.StatsFor(courses, teacherName(user.Profile))
	return &stats, nil
}

func teacherName(p models.Profile) string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CreateCourse publishes a course authored by a teacher
func (s *catalogServiceImpl) CreateCourse(ctx context.Context, teacherID int64, course *models.Course) (*models.Course, error) {
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.RoleTeacher {
		return nil, apperrors.NewForbiddenError("only teachers can publish courses")
	}

	if strings.TrimSpace(course.Teacher.Name) == "" {
		course.Teacher.Name = teacherName(teacher.Profile)
	}
	if course.Teacher.University == "" {
		course.Teacher.University = teacher.Profile.University
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}

	s.logger.Info().Int64("courseID", id).Int64("teacherID", teacherID).Msg("Course published")
	return s.courseRepo.GetByID(ctx, id)
}

// validateCourse validates course data before database operations
func validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}
	course.Title = strings.TrimSpace(course.Title)
	if course.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsCourseTitle(course.Title) {
		return fmt.Errorf("%w: title must be %d to %d characters", apperrors.ErrValidationFailed, validation.TitleMinLength, validation.TitleMaxLength)
	}
	if course.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
	}
	if !currency.IsExact(course.Price) {
		return fmt.Errorf("%w: price has more than %d decimal places", apperrors.ErrValidationFailed, currency.Places)
	}
	if course.OriginalPrice != nil && (course.OriginalPrice.IsNegative() || !currency.IsExact(*course.OriginalPrice)) {
		return fmt.Errorf("%w: original price must be a non-negative amount", apperrors.ErrValidationFailed)
	}
	if course.Rating < 0 || course.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", apperrors.ErrValidationFailed)
	}
	if course.Students < 0 {
		return fmt.Errorf("%w: students cannot be negative", apperrors.ErrValidationFailed)
	}
	if course.Level != "" {
		valid := false
		for _, l := range models.Levels {
			if course.Level == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: unknown level %q", apperrors.ErrValidationFailed, course.Level)
		}
	}
	return nil
}
