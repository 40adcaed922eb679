package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDemoAlreadyDone     = errors.New("demo task already completed")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type UserRepository interface {
	// User operations
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByExternalID(db *gorm.DB, provider models.AuthProvider, externalID string) (*models.User, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
	List(db *gorm.DB, filter UserFilter) ([]models.User, error)
	Count(db *gorm.DB, filter UserFilter) (int64, error)

	// CompleteDemo фиксирует результат демо-задания один раз
	CompleteDemo(db *gorm.DB, id string, score int) error

	// Balance operations, выполняются одним SQL-выражением
	AdjustBalance(db *gorm.DB, id string, delta decimal.Decimal) error
	DebitBalance(db *gorm.DB, id string, amount decimal.Decimal) error
}

type UserFilter struct {
	Role          models.UserRole
	AccountStatus models.AccountStatus
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// Create полагается на уникальный индекс по email, чтобы параллельные регистрации не проходили обе
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *UserRepositoryImpl) FindByExternalID(db *gorm.DB, provider models.AuthProvider, externalID string) (*models.User, error) {
	return r.findOne(db, "auth_provider = ? AND external_id = ?", provider, externalID)
}

func (r *UserRepositoryImpl) findOne(db *gorm.DB, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update применяет частичное обновление. Баланс здесь менять нельзя.
func (r *UserRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	delete(fields, "balance")
	fields["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) List(db *gorm.DB, filter UserFilter) ([]models.User, error) {
	var users []models.User
	err := r.filtered(db, filter).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Count(db *gorm.DB, filter UserFilter) (int64, error) {
	var count int64
	err := r.filtered(db, filter).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) filtered(db *gorm.DB, filter UserFilter) *gorm.DB {
	query := db.Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.AccountStatus != "" {
		query = query.Where("account_status = ?", filter.AccountStatus)
	}
	return query
}

func (r *UserRepositoryImpl) CompleteDemo(db *gorm.DB, id string, score int) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND demo_task_completed = ?", id, false).
		Updates(map[string]interface{}{
			"demo_task_completed": true,
			"demo_task_score":     score,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return ErrDemoAlreadyDone
}

// Balance operations

// AdjustBalance - balance = balance + delta
func (r *UserRepositoryImpl) AdjustBalance(db *gorm.DB, id string, delta decimal.Decimal) error {
	result := db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DebitBalance списывает amount, только если на балансе достаточно средств
func (r *UserRepositoryImpl) DebitBalance(db *gorm.DB, id string, amount decimal.Decimal) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND balance >= ?", id, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Ни одна строка не подошла: либо нет юзера, либо не хватает денег
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return ErrInsufficientBalance
}
