package services

import (
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WorkerService interface {
	ListWorkers(db *gorm.DB, query *dto.WorkerListQuery) ([]dto.UserResponse, error)
	GetWorker(db *gorm.DB, workerID string) (*dto.UserResponse, error)
	UpdateStatus(db *gorm.DB, workerID string, req *dto.UpdateWorkerStatusRequest) (*dto.UserResponse, error)
	GetStats(db *gorm.DB, actor *session.Session) (*dto.StatsResponse, error)
}

type WorkerServiceImpl struct {
	userRepo    repositories.UserRepository
	taskRepo    repositories.TaskRepository
	paymentRepo repositories.PaymentRepository
	sessionRepo repositories.SessionRepository
	notifier    Notifier
}

func NewWorkerService(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	paymentRepo repositories.PaymentRepository,
	sessionRepo repositories.SessionRepository,
	notifier Notifier,
) WorkerService {
	return &WorkerServiceImpl{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		paymentRepo: paymentRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
	}
}

func (s *WorkerServiceImpl) ListWorkers(db *gorm.DB, query *dto.WorkerListQuery) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(db, repositories.UserFilter{
		Role:          models.UserRoleWorker,
		AccountStatus: models.AccountStatus(query.Status),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *WorkerServiceImpl) GetWorker(db *gorm.DB, workerID string) (*dto.UserResponse, error) {
	user, err := s.findWorker(db, workerID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateStatus - approve / suspend / terminate. Из terminated выхода нет.
func (s *WorkerServiceImpl) UpdateStatus(db *gorm.DB, workerID string, req *dto.UpdateWorkerStatusRequest) (*dto.UserResponse, error) {
	switch req.Status {
	case models.AccountStatusActive, models.AccountStatusSuspended, models.AccountStatusTerminated:
	default:
		return nil, apperrors.NewValidationFieldError("status", "Must be one of: active, suspended, terminated")
	}

	user, err := s.findWorker(db, workerID)
	if err != nil {
		return nil, err
	}
	if user.AccountStatus == models.AccountStatusTerminated {
		return nil, apperrors.ErrAccountStatusFinal
	}
	if user.AccountStatus == req.Status {
		resp := dto.NewUserResponse(user)
		return &resp, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(tx, user.ID, map[string]interface{}{
			"account_status": req.Status,
		}); err != nil {
			return apperrors.InternalError(err)
		}
		// Заблокированный воркер теряет все открытые сессии
		if req.Status.IsBlocked() {
			if err := s.sessionRepo.DeleteByUserID(tx, user.ID); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Worker status changed",
		"worker_id", user.ID,
		"from", user.AccountStatus,
		"to", req.Status,
	)

	user.AccountStatus = req.Status
	s.notifier.AccountStatusChanged(ctxOf(db), user)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *WorkerServiceImpl) GetStats(db *gorm.DB, actor *session.Session) (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	userCounts := []struct {
		dst    *int64
		status models.AccountStatus
	}{
		{&stats.TotalWorkers, ""},
		{&stats.ActiveWorkers, models.AccountStatusActive},
		{&stats.PendingWorkers, models.AccountStatusPending},
	}
	for _, uc := range userCounts {
		n, err := s.userRepo.Count(db, repositories.UserFilter{Role: models.UserRoleWorker, AccountStatus: uc.status})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*uc.dst = n
	}

	taskCounts := []struct {
		dst    *int64
		status models.TaskStatus
	}{
		{&stats.TotalTasks, ""},
		{&stats.AvailableTasks, models.TaskStatusAvailable},
		{&stats.InProgressTasks, models.TaskStatusInProgress},
		{&stats.SubmittedTasks, models.TaskStatusSubmitted},
		{&stats.CompletedTasks, models.TaskStatusCompleted},
	}
	for _, tc := range taskCounts {
		n, err := s.taskRepo.Count(db, repositories.TaskFilter{Status: tc.status})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*tc.dst = n
	}

	count, total, err := s.paymentRepo.PendingWithdrawals(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.PendingWithdrawals = count
	stats.PendingAmount = money.NewAmount(total, currencyOf(&actor.User))

	return stats, nil
}

func (s *WorkerServiceImpl) findWorker(db *gorm.DB, workerID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, workerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleWorker {
		return nil, apperrors.ErrWorkerNotFound
	}
	return user, nil
}
