// Package qualification holds the signup knowledge quiz and the demo task
// rules a worker passes before they can take paid tasks.
package qualification

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PassingScore is the minimum quiz score (percent) to create an account.
var PassingScore = decimal.NewFromInt(60)

var ErrIncompleteAnswers = errors.New("all questions must be answered")

// SelectQuestionSet picks the bank for the given skills.
func SelectQuestionSet(skills []string) SetKey {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}
	for _, set := range skillSets {
		for _, s := range set.skills {
			if _, ok := have[s]; ok {
				return set.key
			}
		}
	}
	return SetGeneral
}

// Result of a scored quiz.
type Result struct {
	Set     SetKey          `json:"set"`
	Correct int             `json:"correct"`
	Total   int             `json:"total"`
	Score   decimal.Decimal `json:"score"`
	Passed  bool            `json:"passed"`
}

// Score grades answers (option indexes) against the set chosen for skills.
// Score = correct / total * 100.
func Score(skills []string, answers []int) (*Result, error) {
	key := SelectQuestionSet(skills)
	questions := questionSets[key]

	if len(answers) != len(questions) {
		return nil, fmt.Errorf("%w: got %d of %d", ErrIncompleteAnswers, len(answers), len(questions))
	}

	correct := 0
	for i, q := range questions {
		if answers[i] < 0 || answers[i] >= len(q.Options) {
			return nil, fmt.Errorf("%w: answer %d out of range", ErrIncompleteAnswers, i+1)
		}
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	// точное значение; округление до decimal(5,2) делает StoredScore
	score := decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(len(questions))))

	return &Result{
		Set:     key,
		Correct: correct,
		Total:   len(questions),
		Score:   score,
		Passed:  decimal.NewFromInt(int64(correct*100)).GreaterThanOrEqual(PassingScore.Mul(decimal.NewFromInt(int64(len(questions))))),
	}, nil
}

// StoredScore is the score rounded to the users.knowledge_score column (2 places).
func (r *Result) StoredScore() decimal.Decimal {
	return r.Score.Round(2)
}
