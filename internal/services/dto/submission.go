package dto

import (
	"time"

	"gigwork_backend/internal/models"

	"github.com/shopspring/decimal"
)

type CreateDailySubmissionRequest struct {
	Date            string          `json:"date" validate:"required,is-date"`
	WorkType        models.WorkType `json:"work_type" validate:"required,is-work-type"`
	HoursWorked     decimal.Decimal `json:"hours_worked" validate:"required,gt=0,lte=24"`
	Description     string          `json:"description" validate:"omitempty,max=5000"`
	GithubCommitURL string          `json:"github_commit_url" validate:"omitempty,url"`
	VideoURL        string          `json:"video_url" validate:"omitempty,url"`
}

type DailySubmissionListQuery struct {
	UserID   string `form:"user_id" json:"user_id"`
	Reviewed *bool  `form:"reviewed" json:"reviewed"`
	DateFrom string `form:"date_from" json:"date_from" validate:"omitempty,is-date"`
	DateTo   string `form:"date_to" json:"date_to" validate:"omitempty,is-date"`
}

type ReviewDailySubmissionRequest struct {
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

type DailySubmissionResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Date            string          `json:"date"`
	WorkType        models.WorkType `json:"work_type"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	Description     string          `json:"description,omitempty"`
	GithubCommitURL string          `json:"github_commit_url,omitempty"`
	VideoURL        string          `json:"video_url,omitempty"`
	AdminReviewed   bool            `json:"admin_reviewed"`
	AdminFeedback   string          `json:"admin_feedback,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewDailySubmissionResponse(s *models.DailySubmission) DailySubmissionResponse {
	return DailySubmissionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		Date:            s.Date,
		WorkType:        s.WorkType,
		HoursWorked:     s.HoursWorked,
		Description:     s.Description,
		GithubCommitURL: s.GithubCommitURL,
		VideoURL:        s.VideoURL,
		AdminReviewed:   s.AdminReviewed,
		AdminFeedback:   s.AdminFeedback,
		CreatedAt:       s.CreatedAt,
	}
}

func NewDailySubmissionResponses(items []models.DailySubmission) []DailySubmissionResponse {
	out := make([]DailySubmissionResponse, 0, len(items))
	for i := range items {
		out = append(out, NewDailySubmissionResponse(&items[i]))
	}
	return out
}
