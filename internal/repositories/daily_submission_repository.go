package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDailySubmissionNotFound = errors.New("daily submission not found")
	ErrDailySubmissionExists   = errors.New("daily submission already exists for date")
)

type DailySubmissionRepository interface {
	Create(db *gorm.DB, submission *models.DailySubmission) error
	FindByID(db *gorm.DB, id string) (*models.DailySubmission, error)
	List(db *gorm.DB, filter DailySubmissionFilter) ([]models.DailySubmission, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
}

type DailySubmissionFilter struct {
	UserID   string
	Reviewed *bool
	DateFrom string
	DateTo   string
}

type dailySubmissionRepository struct{}

func NewDailySubmissionRepository() DailySubmissionRepository {
	return &dailySubmissionRepository{}
}

// Create: один отчет на (user_id, date), держит idx_daily_user_date
func (r *dailySubmissionRepository) Create(db *gorm.DB, submission *models.DailySubmission) error {
	if err := db.Create(submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDailySubmissionExists
		}
		return err
	}
	return nil
}

func (r *dailySubmissionRepository) FindByID(db *gorm.DB, id string) (*models.DailySubmission, error) {
	var submission models.DailySubmission
	if err := db.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailySubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *dailySubmissionRepository) List(db *gorm.DB, filter DailySubmissionFilter) ([]models.DailySubmission, error) {
	query := db.Model(&models.DailySubmission{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Reviewed != nil {
		query = query.Where("admin_reviewed = ?", *filter.Reviewed)
	}
	// Даты в формате YYYY-MM-DD сравниваются как строки
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}

	var submissions []models.DailySubmission
	err := query.Order("date DESC, created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *dailySubmissionRepository) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.DailySubmission{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDailySubmissionNotFound
	}
	return nil
}
