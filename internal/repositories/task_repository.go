package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskStatusConflict - задача существует, но уже в другом статусе
	ErrTaskStatusConflict = errors.New("task status changed concurrently")
)

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	List(db *gorm.DB, filter TaskFilter) ([]models.Task, error)
	Count(db *gorm.DB, filter TaskFilter) (int64, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error

	// UpdateIfStatus - compare-and-set: обновляет только если текущий статус входит в from
	UpdateIfStatus(db *gorm.DB, id string, from []models.TaskStatus, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
}

type TaskFilter struct {
	Status     models.TaskStatus
	AssignedTo string
	CreatedBy  string
}

type TaskRepositoryImpl struct{}

func NewTaskRepository() TaskRepository {
	return &TaskRepositoryImpl{}
}

func (r *TaskRepositoryImpl) Create(db *gorm.DB, task *models.Task) error {
	return db.Create(task).Error
}

func (r *TaskRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) List(db *gorm.DB, filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := r.filtered(db, filter).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Count(db *gorm.DB, filter TaskFilter) (int64, error) {
	var count int64
	err := r.filtered(db, filter).Count(&count).Error
	return count, err
}

func (r *TaskRepositoryImpl) filtered(db *gorm.DB, filter TaskFilter) *gorm.DB {
	query := db.Model(&models.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	return query
}

func (r *TaskRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) UpdateIfStatus(db *gorm.DB, id string, from []models.TaskStatus, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Task{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	return ErrTaskStatusConflict
}

// Delete - безвозвратно, выданные платежи не трогаются
func (r *TaskRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
