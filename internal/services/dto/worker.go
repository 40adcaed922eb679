package dto

import (
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
)

type WorkerListQuery struct {
	Status string `form:"status" json:"status" validate:"omitempty,is-account-status"`
}

type UpdateWorkerStatusRequest struct {
	Status models.AccountStatus `json:"status" validate:"required,oneof=active suspended terminated"`
}

// StatsResponse - счетчики для дашборда админа
type StatsResponse struct {
	TotalWorkers       int64        `json:"total_workers"`
	ActiveWorkers      int64        `json:"active_workers"`
	PendingWorkers     int64        `json:"pending_workers"`
	TotalTasks         int64        `json:"total_tasks"`
	AvailableTasks     int64        `json:"available_tasks"`
	InProgressTasks    int64        `json:"in_progress_tasks"`
	SubmittedTasks     int64        `json:"submitted_tasks"`
	CompletedTasks     int64        `json:"completed_tasks"`
	PendingWithdrawals int64        `json:"pending_withdrawals"`
	PendingAmount      money.Amount `json:"pending_withdrawal_amount"`
}

// WorkerMatchResponse - кандидат на задачу с оценкой соответствия
type WorkerMatchResponse struct {
	Worker  UserResponse `json:"worker"`
	Score   float64      `json:"score"`
	Reasons []string     `json:"reasons"`
}
