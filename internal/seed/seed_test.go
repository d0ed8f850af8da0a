package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/currency"
)

type courseStore struct {
	byTitle map[string]models.Course
	upserts int
}

func (s *courseStore) List(context.Context) ([]models.Course, error) { return nil, nil }

func (s *courseStore) GetByID(context.Context, int64) (*models.Course, error) {
	return nil, apperrors.ErrCourseNotFound
}

func (s *courseStore) Create(ctx context.Context, c *models.Course) (int64, error) {
	return s.Upsert(ctx, c)
}

func (s *courseStore) Upsert(_ context.Context, c *models.Course) (int64, error) {
	s.upserts++
	stored := *c
	if existing, ok := s.byTitle[c.Title]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = int64(len(s.byTitle) + 1)
	}
	s.byTitle[c.Title] = stored
	return stored.ID, nil
}

type userStore struct {
	byEmail map[string]models.User
}

func (s *userStore) Create(_ context.Context, u *models.User) (int64, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	stored := *u
	stored.ID = int64(len(s.byEmail) + 1)
	s.byEmail[u.Email] = stored
	return stored.ID, nil
}

func (s *userStore) GetByID(context.Context, int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (s *userStore) UpdateProfile(context.Context, int64, models.Profile) error { return nil }

func TestDefaultCoursesAreWellFormed(t *testing.T) {
	courses := DefaultCourses()
	require.Len(t, courses, 8)

	titles := map[string]bool{}
	for i, c := range courses {
		assert.Equal(t, int64(i+1), c.ID)
		assert.False(t, titles[c.Title], "duplicate title %q", c.Title)
		titles[c.Title] = true
		assert.True(t, c.Price.IsPositive())
		assert.True(t, currency.IsExact(c.Price), c.Title)
		assert.NotNil(t, c.LastUpdated)
		assert.Contains(t, models.Levels, c.Level)
	}

	assert.Equal(t, "4499.25", courses[0].Price.String())
	assert.Equal(t, "5999.25", courses[0].OriginalPrice.String())

	facets := catalog.BuildFacets(courses)
	assert.Len(t, facets.Categories, 8)
}

func TestDefaultCoursesReturnsFreshCopies(t *testing.T) {
	a := DefaultCourses()
	a[0].Chapters[0].Title = "changed"
	assert.Equal(t, "Introduction to Web Development", DefaultCourses()[0].Chapters[0].Title)
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	courses := &courseStore{byTitle: map[string]models.Course{}}
	users := &userStore{byEmail: map[string]models.User{}}
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, courses, users, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, courses, users, zerolog.Nop()))

	assert.Len(t, courses.byTitle, 8)
	assert.Len(t, users.byEmail, 2)

	student := users.byEmail["student@example.com"]
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.Equal(t, "18750", student.Balance.String())

	teacher := users.byEmail["teacher@example.com"]
	assert.Equal(t, models.RoleTeacher, teacher.Role)
	assert.Equal(t, "37500", teacher.Balance.String())
}
