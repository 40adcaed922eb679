package dto

import "gigwork_backend/internal/qualification"

type QuizQuery struct {
	// Через запятую: ?skills=React,Node.js
	Skills string `form:"skills" json:"skills"`
}

type QuizResponse struct {
	Set          qualification.SetKey     `json:"set"`
	Questions    []qualification.Question `json:"questions"`
	PassingScore string                   `json:"passing_score"`
}

type ExpertiseRequest struct {
	Expertise   string `json:"expertise" validate:"required,is-expertise"`
	ExtraSkills string `json:"extra_skills" validate:"omitempty,max=500"`
}

// Стадии онбординга
const (
	StageSkillsPending = "skills_pending"
	StageDemoPending   = "demo_pending"
	StageCompleted     = "completed"
)

type OnboardingStatusResponse struct {
	Stage             string   `json:"stage"`
	Skills            []string `json:"skills"`
	KnowledgeScore    string   `json:"knowledge_score"`
	DemoTaskCompleted bool     `json:"demo_task_completed"`
	DemoTaskScore     int      `json:"demo_task_score"`
	AccountStatus     string   `json:"account_status"`
}

type DemoSubmitRequest struct {
	Submission string `json:"submission" validate:"required,max=10000"`
}

type DemoResultResponse struct {
	Category qualification.DemoCategory `json:"category"`
	Score    int                        `json:"score"`
	Status   OnboardingStatusResponse   `json:"status"`
}
