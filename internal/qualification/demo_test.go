package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSkills(t *testing.T) {
	assert.Equal(t, []string{"Developer", "Go", "SQL"}, BuildSkills("Developer", " Go, ,SQL,Go "))
	assert.Equal(t, []string{"Writing"}, BuildSkills("Writing", ""))
}

func TestCategoryForSkills(t *testing.T) {
	assert.Equal(t, DemoDeveloper, CategoryForSkills([]string{"developer"}))
	assert.Equal(t, DemoVideoEditor, CategoryForSkills([]string{"Video Editor", "Marketing"}))
	assert.Equal(t, DemoMarketing, CategoryForSkills([]string{"SEO", "Marketing"}))
	assert.Equal(t, DemoGeneral, CategoryForSkills([]string{"React"}))
}

func TestDemoTaskFor(t *testing.T) {
	task := DemoTaskFor([]string{"Designer"})
	assert.Equal(t, DemoDesigner, task.Category)
	assert.Equal(t, "Designer Demo Task", task.Title)
	assert.NotEmpty(t, task.Deliverable)
}

func TestRandomScorer_Range(t *testing.T) {
	var scorer RandomScorer
	for i := 0; i < 500; i++ {
		s := scorer.Score(DemoGeneral, "x")
		assert.GreaterOrEqual(t, s, MinDemoScore)
		assert.LessOrEqual(t, s, MaxDemoScore)
	}
}

func TestIsExpertise(t *testing.T) {
	assert.True(t, IsExpertise("Video Editor"))
	assert.False(t, IsExpertise("video editor"))
}
