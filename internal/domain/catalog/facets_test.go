package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/edutech/internal/app/models"
)

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(fixture())

	assert.Equal(t, []string{"Cybersecurity", "Machine Learning", "Mobile Development", "Web Development"}, f.Categories)
	assert.Equal(t, []string{"Berkeley", "MIT", "Stanford University"}, f.Universities)
	assert.Equal(t, []models.Level{models.LevelBeginner, models.LevelIntermediate}, f.Levels)
}

func TestBuildFacetsEmptyCatalog(t *testing.T) {
	f := BuildFacets(nil)
	assert.Empty(t, f.Categories)
	assert.Empty(t, f.Universities)
	assert.Empty(t, f.Levels)
}

func TestPopularAndTopRated(t *testing.T) {
	assert.Equal(t, []int64{1, 2}, ids(Popular(fixture(), 2000)))
	assert.Equal(t, []int64{1, 3}, ids(TopRated(fixture(), 4.8)))
}
