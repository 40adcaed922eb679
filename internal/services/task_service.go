package services

import (
	"strings"

	"gigwork_backend/internal/algorithms"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TaskService - жизненный цикл задачи:
// available -> in-progress -> submitted -> completed | rejected,
// а также in-progress -> completed | rejected напрямую.
type TaskService interface {
	CreateTask(db *gorm.DB, actor *session.Session, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	AssignTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.AssignTaskRequest) (*dto.TaskResponse, error)
	SubmitTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.SubmitTaskRequest) (*dto.TaskResponse, error)
	ApproveTask(db *gorm.DB, actor *session.Session, taskID string) (*dto.ApproveTaskResponse, error)
	RejectTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.RejectTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(db *gorm.DB, taskID string) error

	GetTask(db *gorm.DB, actor *session.Session, taskID string) (*dto.TaskResponse, error)
	ListTasks(db *gorm.DB, actor *session.Session, query *dto.TaskListQuery) ([]dto.TaskResponse, error)

	// SuggestWorkers ранжирует кандидатов для назначения свободной задачи
	SuggestWorkers(db *gorm.DB, taskID string, limit int) ([]dto.WorkerMatchResponse, error)
}

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	ledger   LedgerService
	notifier Notifier
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	ledger LedgerService,
	notifier Notifier,
) TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
		ledger:   ledger,
		notifier: notifier,
	}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, actor *session.Session, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	skills := cleanList(req.Skills)
	if len(skills) == 0 {
		return nil, apperrors.NewValidationFieldError("skills", "At least one skill is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationFieldError("title", "This field is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationFieldError("description", "This field is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.NewValidationFieldError("category", "This field is required")
	}
	if req.Deadline.IsZero() {
		return nil, apperrors.NewValidationFieldError("deadline", "This field is required")
	}
	if !req.WeeklyPayout.IsPositive() {
		return nil, apperrors.NewValidationFieldError("weekly_payout", "Must be greater than 0")
	}

	// Выплату вводят в валюте админа, храним в базовой
	currency := currencyOf(&actor.User)
	if req.Currency != "" {
		c, err := money.ParseCurrency(req.Currency)
		if err != nil {
			return nil, apperrors.NewValidationFieldError("currency", err.Error())
		}
		currency = c
	}

	task := &models.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		Skills:       models.StringList(skills),
		WeeklyPayout: money.ToBase(req.WeeklyPayout, currency),
		Deadline:     req.Deadline.UTC(),
		Status:       models.TaskStatusAvailable,
		CreatedBy:    actor.UserID(),
	}

	if err := s.taskRepo.Create(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Task created", "task_id", task.ID, "payout", task.WeeklyPayout.String())

	resp := dto.NewTaskResponse(task, currencyOf(&actor.User))
	return &resp, nil
}

// AssignTask - только из available. Параллельные назначения: выигрывает первое.
func (s *TaskServiceImpl) AssignTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.AssignTaskRequest) (*dto.TaskResponse, error) {
	workerID := strings.TrimSpace(req.WorkerID)
	if workerID == "" {
		return nil, apperrors.NewValidationFieldError("worker_id", "This field is required")
	}

	worker, err := s.userRepo.FindByID(db, workerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if worker.Role != models.UserRoleWorker {
		return nil, apperrors.ErrWorkerNotFound
	}

	assignedAt := now()
	err = s.taskRepo.UpdateIfStatus(db, taskID, []models.TaskStatus{models.TaskStatusAvailable}, map[string]interface{}{
		"status":      models.TaskStatusInProgress,
		"assigned_to": worker.ID,
		"assigned_at": assignedAt,
	})
	if err != nil {
		return nil, s.mapTransitionError(err, "Task is not available for assignment")
	}

	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Task assigned", "task_id", task.ID, "worker_id", worker.ID)
	s.notifier.TaskAssigned(ctxOf(db), worker, task)

	resp := dto.NewTaskResponse(task, currencyOf(&actor.User))
	return &resp, nil
}

// SubmitTask - только исполнитель и только из in-progress
func (s *TaskServiceImpl) SubmitTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.SubmitTaskRequest) (*dto.TaskResponse, error) {
	value := strings.TrimSpace(req.SubmissionURL)
	if value == "" {
		return nil, apperrors.NewValidationFieldError("submission_url", "This field is required")
	}

	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignedTo(actor.UserID()) {
		return nil, apperrors.ErrTaskNotOwned
	}
	if task.Status != models.TaskStatusInProgress {
		return nil, apperrors.ErrInvalidStatus("task", "Only in-progress tasks can be submitted")
	}

	submittedAt := now()
	err = s.taskRepo.UpdateIfStatus(db, taskID, []models.TaskStatus{models.TaskStatusInProgress}, map[string]interface{}{
		"status":         models.TaskStatusSubmitted,
		"submitted_at":   submittedAt,
		"submission_url": value,
	})
	if err != nil {
		return nil, s.mapTransitionError(err, "Only in-progress tasks can be submitted")
	}

	task.Status = models.TaskStatusSubmitted
	task.SubmittedAt = &submittedAt
	task.SubmissionURL = value

	logger.CtxInfo(ctxOf(db), "Task submitted", "task_id", task.ID, "worker_id", actor.UserID())

	resp := dto.NewTaskResponse(task, currencyOf(&actor.User))
	return &resp, nil
}

// ApproveTask завершает задачу и начисляет выплату в одной транзакции
func (s *TaskServiceImpl) ApproveTask(db *gorm.DB, actor *session.Session, taskID string) (*dto.ApproveTaskResponse, error) {
	var (
		task    *models.Task
		payment *models.Payment
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		task, err = s.findTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.AssignedTo == nil {
			return apperrors.ErrTaskNotAssigned
		}
		if !task.Status.Reviewable() {
			return apperrors.ErrInvalidStatus("task", "Only submitted or in-progress tasks can be approved")
		}

		completedAt := now()
		err = s.taskRepo.UpdateIfStatus(tx, taskID, reviewableStatuses, map[string]interface{}{
			"status":       models.TaskStatusCompleted,
			"completed_at": completedAt,
		})
		if err != nil {
			return s.mapTransitionError(err, "Only submitted or in-progress tasks can be approved")
		}
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &completedAt

		payment, err = s.ledger.CreditTaskPayment(tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Task approved",
		"task_id", task.ID,
		"worker_id", *task.AssignedTo,
		"payment_id", payment.ID,
		"amount", payment.Amount.String(),
	)
	if worker, err := s.userRepo.FindByID(db, *task.AssignedTo); err == nil {
		s.notifier.TaskApproved(ctxOf(db), worker, task)
	}

	currency := currencyOf(&actor.User)
	return &dto.ApproveTaskResponse{
		Task:    dto.NewTaskResponse(task, currency),
		Payment: dto.NewPaymentResponse(payment, currency),
	}, nil
}

// RejectTask - отклоненная задача финальна, выплаты нет
func (s *TaskServiceImpl) RejectTask(db *gorm.DB, actor *session.Session, taskID string, req *dto.RejectTaskRequest) (*dto.TaskResponse, error) {
	feedback := strings.TrimSpace(req.Feedback)
	err := s.taskRepo.UpdateIfStatus(db, taskID, reviewableStatuses, map[string]interface{}{
		"status":   models.TaskStatusRejected,
		"feedback": feedback,
	})
	if err != nil {
		return nil, s.mapTransitionError(err, "Only submitted or in-progress tasks can be rejected")
	}

	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "Task rejected", "task_id", task.ID)
	if task.AssignedTo != nil {
		if worker, err := s.userRepo.FindByID(db, *task.AssignedTo); err == nil {
			s.notifier.TaskRejected(ctxOf(db), worker, task)
		}
	}

	resp := dto.NewTaskResponse(task, currencyOf(&actor.User))
	return &resp, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, taskID string) error {
	if err := s.taskRepo.Delete(db, taskID); err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctxOf(db), "Task deleted", "task_id", taskID)
	return nil
}

// GetTask - воркер видит только свои задачи
func (s *TaskServiceImpl) GetTask(db *gorm.DB, actor *session.Session, taskID string) (*dto.TaskResponse, error) {
	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !task.IsAssignedTo(actor.UserID()) {
		// Чужая задача для воркера не существует
		return nil, apperrors.ErrTaskNotFound
	}
	resp := dto.NewTaskResponse(task, currencyOf(&actor.User))
	return &resp, nil
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, actor *session.Session, query *dto.TaskListQuery) ([]dto.TaskResponse, error) {
	filter := repositories.TaskFilter{Status: models.TaskStatus(query.Status)}
	if !actor.IsAdmin() {
		filter.AssignedTo = actor.UserID()
	}

	tasks, err := s.taskRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponses(tasks, currencyOf(&actor.User)), nil
}

func (s *TaskServiceImpl) SuggestWorkers(db *gorm.DB, taskID string, limit int) ([]dto.WorkerMatchResponse, error) {
	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusAvailable {
		return nil, apperrors.ErrInvalidStatus("task", "Only available tasks can be matched")
	}

	workers, err := s.userRepo.List(db, repositories.UserFilter{
		Role:          models.UserRoleWorker,
		AccountStatus: models.AccountStatusActive,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	matches := algorithms.RankWorkers(task, workers, limit)
	out := make([]dto.WorkerMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.WorkerMatchResponse{
			Worker:  dto.NewUserResponse(m.Worker),
			Score:   m.Score,
			Reasons: m.Reasons,
		})
	}
	return out, nil
}

// --- helpers ---

var reviewableStatuses = []models.TaskStatus{models.TaskStatusSubmitted, models.TaskStatusInProgress}

func (s *TaskServiceImpl) findTask(db *gorm.DB, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return task, nil
}

func (s *TaskServiceImpl) mapTransitionError(err error, conflictMsg string) error {
	switch {
	case apperrors.Is(err, repositories.ErrTaskNotFound):
		return apperrors.ErrTaskNotFound
	case apperrors.Is(err, repositories.ErrTaskStatusConflict):
		return apperrors.ErrInvalidStatus("task", conflictMsg)
	default:
		return apperrors.InternalError(err)
	}
}
