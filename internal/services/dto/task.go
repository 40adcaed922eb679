package dto

import (
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"

	"github.com/shopspring/decimal"
)

// --- Requests ---

// CreateTaskRequest - выплата вводится в валюте Currency и хранится в базовой
type CreateTaskRequest struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Description  string          `json:"description" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Skills       []string        `json:"skills" validate:"required,min=1,dive,required"`
	WeeklyPayout decimal.Decimal `json:"weekly_payout" validate:"required,gt=0"`
	Currency     string          `json:"currency" validate:"omitempty,is-currency"`
	Deadline     time.Time       `json:"deadline" validate:"required"`
}

type AssignTaskRequest struct {
	WorkerID string `json:"worker_id" validate:"required"`
}

type SubmitTaskRequest struct {
	SubmissionURL string `json:"submission_url" validate:"required"`
}

type RejectTaskRequest struct {
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

type TaskListQuery struct {
	Status string `form:"status" json:"status" validate:"omitempty,is-task-status"`
}

// --- Responses ---

type TaskResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Skills        []string          `json:"skills"`
	WeeklyPayout  money.Amount      `json:"weekly_payout"`
	Deadline      time.Time         `json:"deadline"`
	Status        models.TaskStatus `json:"status"`
	AssignedTo    *string           `json:"assigned_to"`
	CreatedBy     string            `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	AssignedAt    *time.Time        `json:"assigned_at,omitempty"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	SubmissionURL string            `json:"submission_url,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	Feedback      string            `json:"feedback,omitempty"`
}

func NewTaskResponse(t *models.Task, currency money.Currency) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Category:      t.Category,
		Skills:        t.SkillList(),
		WeeklyPayout:  money.NewAmount(t.WeeklyPayout, currency),
		Deadline:      t.Deadline,
		Status:        t.Status,
		AssignedTo:    t.AssignedTo,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		AssignedAt:    t.AssignedAt,
		SubmittedAt:   t.SubmittedAt,
		SubmissionURL: t.SubmissionURL,
		CompletedAt:   t.CompletedAt,
		Feedback:      t.Feedback,
	}
}

func NewTaskResponses(tasks []models.Task, currency money.Currency) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i], currency))
	}
	return out
}

// ApproveTaskResponse - задача и созданная выплата
type ApproveTaskResponse struct {
	Task    TaskResponse    `json:"task"`
	Payment PaymentResponse `json:"payment"`
}
