package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edutech/internal/app/models"
)

func TestTeacherSlug(t *testing.T) {
	assert.Equal(t, "alex-johnson", TeacherSlug("Alex Johnson"))
	assert.Equal(t, "jose-perez", TeacherSlug("  José  Pérez "))
	assert.Equal(t, "o-brien-2", TeacherSlug("O'Brien #2"))
	assert.Equal(t, "alex-johnson", TeacherSlug("alex-johnson"))
	assert.Empty(t, TeacherSlug(" -- "))
}

func teacherFixture() []models.Course {
	courses := fixture()
	courses = append(courses, models.Course{
		ID: 5, Title: "Artificial Intelligence: Deep Learning", Category: "Artificial Intelligence",
		Teacher: models.Teacher{Name: "Michael Chen", University: "Stanford"},
		Price:   decimal.RequireFromString("64.99"), Rating: 4.8, Students: 1876, LastUpdated: month(2023, 5),
	})
	return courses
}

func TestTeachersGroupsByName(t *testing.T) {
	teachers := Teachers(teacherFixture())
	require.Len(t, teachers, 4)

	chen := teachers[0]
	assert.Equal(t, "michael-chen", chen.Slug)
	assert.Equal(t, "Berkeley", chen.Teacher.University, "profile comes from the first course")
	assert.Equal(t, []string{"Berkeley", "Stanford"}, chen.Universities)
	assert.Equal(t, []string{"Artificial Intelligence", "Mobile Development"}, chen.Categories)
	assert.Equal(t, 2, chen.CourseCount)
	assert.Equal(t, int64(3752), chen.Students)
	assert.Equal(t, 4.9, chen.Rating)
	assert.Equal(t, "225082.48", chen.Revenue.String())

	names := make([]string, 0, len(teachers))
	for _, tt := range teachers {
		names = append(names, tt.Teacher.Name)
	}
	assert.Equal(t, []string{"Michael Chen", "Alex Johnson", "Sarah Williams", "Robert Chen"}, names)
}

func TestTeachersSkipsUnnamed(t *testing.T) {
	assert.Empty(t, Teachers([]models.Course{{ID: 1, Title: "Anonymous"}}))
	assert.Empty(t, Teachers(nil))
}

func TestTeacherProfile(t *testing.T) {
	summary, courses, ok := TeacherProfile(teacherFixture(), "michael-chen")
	require.True(t, ok)
	assert.Equal(t, 2, summary.CourseCount)
	assert.Equal(t, []int64{3, 5}, ids(courses), "ties on enrolment keep catalog order")

	_, _, ok = TeacherProfile(teacherFixture(), "Michael Chen")
	assert.True(t, ok, "a display name resolves like its slug")

	_, _, ok = TeacherProfile(teacherFixture(), "nobody")
	assert.False(t, ok)
	_, _, ok = TeacherProfile(teacherFixture(), "")
	assert.False(t, ok)
}

func TestStatsFor(t *testing.T) {
	stats := StatsFor(teacherFixture(), "Michael Chen")
	assert.Equal(t, 2, stats.PublishedCourses)
	assert.Equal(t, int64(3752), stats.TotalStudents)
	assert.Equal(t, "225082.48", stats.TotalRevenue.String())
	require.Len(t, stats.Courses, 2)
	assert.Equal(t, int64(5), stats.Courses[0].Course.ID, "dated courses come first")
	assert.Equal(t, "121921.24", stats.Courses[0].Revenue.String())

	empty := StatsFor(teacherFixture(), "Ada Lovelace")
	assert.Zero(t, empty.PublishedCourses)
	assert.True(t, empty.TotalRevenue.IsZero())
	assert.Empty(t, empty.Courses)
}
