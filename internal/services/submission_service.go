package services

import (
	"strings"

	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/session"
	"gigwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SubmissionService - ежедневные отчеты воркеров о работе
type SubmissionService interface {
	CreateSubmission(db *gorm.DB, actor *session.Session, req *dto.CreateDailySubmissionRequest) (*dto.DailySubmissionResponse, error)
	ListSubmissions(db *gorm.DB, actor *session.Session, query *dto.DailySubmissionListQuery) ([]dto.DailySubmissionResponse, error)
	ReviewSubmission(db *gorm.DB, submissionID string, req *dto.ReviewDailySubmissionRequest) (*dto.DailySubmissionResponse, error)
}

type SubmissionServiceImpl struct {
	submissionRepo repositories.DailySubmissionRepository
}

func NewSubmissionService(submissionRepo repositories.DailySubmissionRepository) SubmissionService {
	return &SubmissionServiceImpl{submissionRepo: submissionRepo}
}

// CreateSubmission - один отчет на дату, нужен хотя бы один URL или описание
func (s *SubmissionServiceImpl) CreateSubmission(db *gorm.DB, actor *session.Session, req *dto.CreateDailySubmissionRequest) (*dto.DailySubmissionResponse, error) {
	description := strings.TrimSpace(req.Description)
	commitURL := strings.TrimSpace(req.GithubCommitURL)
	videoURL := strings.TrimSpace(req.VideoURL)
	if description == "" && commitURL == "" && videoURL == "" {
		return nil, apperrors.NewValidationFieldError("description", "Provide a description, a commit URL or a video URL")
	}

	submission := &models.DailySubmission{
		UserID:          actor.UserID(),
		Date:            req.Date,
		GithubCommitURL: commitURL,
		VideoURL:        videoURL,
		Description:     description,
		WorkType:        req.WorkType,
		HoursWorked:     req.HoursWorked,
	}
	if err := s.submissionRepo.Create(db, submission); err != nil {
		if apperrors.Is(err, repositories.ErrDailySubmissionExists) {
			return nil, apperrors.ErrSubmissionExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Daily submission created", "submission_id", submission.ID, "date", submission.Date)

	resp := dto.NewDailySubmissionResponse(submission)
	return &resp, nil
}

func (s *SubmissionServiceImpl) ListSubmissions(db *gorm.DB, actor *session.Session, query *dto.DailySubmissionListQuery) ([]dto.DailySubmissionResponse, error) {
	filter := repositories.DailySubmissionFilter{
		UserID:   query.UserID,
		Reviewed: query.Reviewed,
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID()
	}

	items, err := s.submissionRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewDailySubmissionResponses(items), nil
}

func (s *SubmissionServiceImpl) ReviewSubmission(db *gorm.DB, submissionID string, req *dto.ReviewDailySubmissionRequest) (*dto.DailySubmissionResponse, error) {
	if err := s.submissionRepo.Update(db, submissionID, map[string]interface{}{
		"admin_reviewed": true,
		"admin_feedback": strings.TrimSpace(req.Feedback),
	}); err != nil {
		if apperrors.Is(err, repositories.ErrDailySubmissionNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	submission, err := s.submissionRepo.FindByID(db, submissionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Daily submission reviewed", "submission_id", submission.ID)

	resp := dto.NewDailySubmissionResponse(submission)
	return &resp, nil
}
