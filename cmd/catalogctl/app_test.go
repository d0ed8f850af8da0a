package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/domain/catalog"
)

func runSearch(t *testing.T, args ...string) []models.Course {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run(append([]string{"catalogctl", "search"}, args...)))

	var courses []models.Course
	require.NoError(t, json.Unmarshal(out.Bytes(), &courses))
	return courses
}

func titles(courses []models.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	return out
}

func TestSearchDefaultsToPopularity(t *testing.T) {
	courses := runSearch(t)
	require.Len(t, courses, 8)
	assert.Equal(t, "Full Stack Web Development Bootcamp", courses[0].Title)
	assert.Equal(t, "Data Structures and Algorithms", courses[1].Title)
}

func TestSearchFilters(t *testing.T) {
	courses := runSearch(t, "--university", "mit", "--sort", "price-asc")
	assert.Equal(t, []string{"Machine Learning Fundamentals", "Cloud Computing with AWS"}, titles(courses))

	courses = runSearch(t, "-q", "swift")
	assert.Equal(t, []string{"iOS App Development with Swift"}, titles(courses))

	courses = runSearch(t, "--level", "Advanced", "--min-rating", "4.8")
	assert.Equal(t, []string{"Artificial Intelligence: Deep Learning"}, titles(courses))

	courses = runSearch(t, "--min-price", "4000", "--max-price", "4200", "--sort", "newest")
	assert.Equal(t, []string{"Cloud Computing with AWS", "iOS App Development with Swift"}, titles(courses))
}

func TestTeachersCommand(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run([]string{"catalogctl", "teachers"}))
	var teachers []catalog.TeacherSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &teachers))
	require.Len(t, teachers, 6)
	assert.Equal(t, "alex-johnson", teachers[0].Slug)

	out.Reset()
	require.NoError(t, app.Run([]string{"catalogctl", "teachers", "michael-chen"}))
	var courses []models.Course
	require.NoError(t, json.Unmarshal(out.Bytes(), &courses))
	assert.Equal(t, []string{"iOS App Development with Swift", "Artificial Intelligence: Deep Learning"}, titles(courses))

	app.ExitErrHandler = func(*cli.Context, error) {}
	assert.Error(t, app.Run([]string{"catalogctl", "teachers", "nobody"}))
}

func TestSearchRejectsBadPrice(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"catalogctl", "search", "--min-price", "cheap"})
	assert.Error(t, err)
}
