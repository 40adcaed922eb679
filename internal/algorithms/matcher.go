package algorithms

import (
	"math"
	"sort"
	"strings"

	"gigwork_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Веса компонент оценки, в сумме 100
const (
	skillsWeight    = 50.0
	knowledgeWeight = 20.0
	demoWeight      = 15.0
	payoutWeight    = 15.0
)

// Match - оценка воркера для задачи
type Match struct {
	Worker  *models.User
	Score   float64
	Reasons []string
}

// IsEligible - задачу можно назначить только активному воркеру после демо-задания
func IsEligible(worker *models.User) bool {
	return worker.Role == models.UserRoleWorker &&
		worker.AccountStatus == models.AccountStatusActive &&
		worker.DemoTaskCompleted
}

// CalculateMatchScore calculates how well a worker fits a task (0-100)
func CalculateMatchScore(task *models.Task, worker *models.User) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// Skills overlap (50 points)
	skillScore := calculateSkillOverlap(task.SkillList(), worker.SkillList())
	score += skillScore
	if skillScore >= skillsWeight {
		reasons = append(reasons, "Has all required skills")
	} else if skillScore > 0 {
		reasons = append(reasons, "Has some required skills")
	}

	// Knowledge test (20 points)
	knowledge, _ := worker.KnowledgeScore.Float64()
	score += clamp(knowledge, 0, 100) / 100 * knowledgeWeight
	if knowledge >= 80 {
		reasons = append(reasons, "Strong knowledge test")
	}

	// Demo task (15 points)
	if worker.DemoTaskCompleted {
		score += clamp(float64(worker.DemoTaskScore), 0, 100) / 100 * demoWeight
		if worker.DemoTaskScore >= 90 {
			reasons = append(reasons, "Excellent demo task")
		}
	}

	// Payout expectation (15 points)
	switch {
	case worker.PreferredWeeklyPayout.IsZero() || worker.PreferredWeeklyPayout.LessThanOrEqual(task.WeeklyPayout):
		score += payoutWeight
		reasons = append(reasons, "Payout within expectation")
	case worker.PreferredWeeklyPayout.LessThanOrEqual(task.WeeklyPayout.Mul(decimal.NewFromFloat(1.25))):
		score += payoutWeight / 2
	}

	return math.Round(score*10) / 10, reasons
}

// RankWorkers оценивает подходящих воркеров, лучшие первыми. limit <= 0 - без ограничения.
func RankWorkers(task *models.Task, workers []models.User, limit int) []Match {
	matches := make([]Match, 0, len(workers))
	for i := range workers {
		w := &workers[i]
		if !IsEligible(w) {
			continue
		}
		score, reasons := CalculateMatchScore(task, w)
		matches = append(matches, Match{Worker: w, Score: score, Reasons: reasons})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// calculateSkillOverlap - доля требуемых навыков, которые есть у воркера (0-50 points)
func calculateSkillOverlap(taskSkills, workerSkills []string) float64 {
	if len(taskSkills) == 0 {
		return skillsWeight / 2 // No specific requirement, give half points
	}

	have := make(map[string]struct{}, len(workerSkills))
	for _, s := range workerSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matches := 0
	for _, s := range taskSkills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(taskSkills)) * skillsWeight
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
