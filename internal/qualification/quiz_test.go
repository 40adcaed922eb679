package qualification

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuestionSet(t *testing.T) {
	cases := []struct {
		name   string
		skills []string
		want   SetKey
	}{
		{"dev", []string{"React"}, SetDev},
		{"dev wins over design", []string{"Graphic Design", "Python"}, SetDev},
		{"design", []string{"After Effects"}, SetDesign},
		{"content", []string{"Content Writing"}, SetContent},
		{"marketing", []string{"SEO"}, SetMarketing},
		{"design wins over marketing", []string{"SEO", "UI/UX Design"}, SetDesign},
		{"case sensitive", []string{"react"}, SetGeneral},
		{"empty", nil, SetGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectQuestionSet(tc.skills))
		})
	}
}

func TestScore_AllCorrect(t *testing.T) {
	res, err := Score([]string{"React"}, []int{1, 0, 2})
	require.NoError(t, err)

	assert.Equal(t, SetDev, res.Set)
	assert.Equal(t, 3, res.Correct)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Score))
	assert.True(t, res.Passed)
}

func TestScore_PassMark(t *testing.T) {
	// 2 of 3 = 66.67 проходит, 1 of 3 = 33.33 нет
	res, err := Score([]string{"Figma", "UI/UX Design"}, []int{2, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, "66.67", res.Score.StringFixed(2))
	assert.True(t, res.Passed)

	res, err = Score([]string{"UI/UX Design"}, []int{2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, "33.33", res.Score.StringFixed(2))
	assert.False(t, res.Passed)
}

func TestScore_KeepsExactQuotient(t *testing.T) {
	res, err := Score([]string{"UI/UX Design"}, []int{2, 0, 3})
	require.NoError(t, err)

	exact := decimal.NewFromInt(200).Div(decimal.NewFromInt(3))
	assert.True(t, exact.Equal(res.Score))
	assert.True(t, res.Score.LessThan(decimal.RequireFromString("66.67")))
	assert.True(t, res.Score.GreaterThan(decimal.RequireFromString("66.66")))
	assert.Equal(t, "66.67", res.StoredScore().String())
}

func TestScore_HalfOnTwoQuestionSet(t *testing.T) {
	res, err := Score(nil, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, SetGeneral, res.Set)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Score))
	assert.False(t, res.Passed)
}

func TestScore_RequiresAllAnswers(t *testing.T) {
	_, err := Score([]string{"React"}, []int{1, 0})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = Score([]string{"React"}, []int{1, 0, 9})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := Questions(SetMarketing)
	require.Len(t, qs, 2)
	qs[0].Question = "changed"
	assert.NotEqual(t, "changed", Questions(SetMarketing)[0].Question)
}
