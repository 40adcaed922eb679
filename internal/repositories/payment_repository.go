package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentStatusConflict = errors.New("payment status changed concurrently")
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, id string) (*models.Payment, error)
	List(db *gorm.DB, filter PaymentFilter) ([]models.Payment, error)
	UpdateIfStatus(db *gorm.DB, id string, from models.PaymentStatus, fields map[string]interface{}) error

	// Агрегаты леджера
	SumByUser(db *gorm.DB, userID string) (*LedgerTotals, error)
	SumAllByUser(db *gorm.DB) (map[string]*LedgerTotals, error)
	PendingWithdrawals(db *gorm.DB) (int64, decimal.Decimal, error)
}

type PaymentFilter struct {
	UserID string
	Type   models.PaymentType
	Status models.PaymentStatus
	TaskID string
}

// LedgerTotals - суммы по типам и статусам для одного пользователя
type LedgerTotals struct {
	Credited          decimal.Decimal // completed task-payment
	Withdrawn         decimal.Decimal // completed withdrawal
	PendingWithdrawal decimal.Decimal // pending withdrawal
}

// Balance - баланс, выведенный из леджера
func (t *LedgerTotals) Balance() decimal.Decimal {
	return t.Credited.Sub(t.Withdrawn)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := db.Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) List(db *gorm.DB, filter PaymentFilter) ([]models.Payment, error) {
	query := db.Model(&models.Payment{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TaskID != "" {
		query = query.Where("task_id = ?", filter.TaskID)
	}

	var payments []models.Payment
	err := query.Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) UpdateIfStatus(db *gorm.DB, id string, from models.PaymentStatus, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPaymentNotFound
	}
	return ErrPaymentStatusConflict
}

type ledgerRow struct {
	UserID string
	Type   models.PaymentType
	Status models.PaymentStatus
	Total  decimal.Decimal
}

func (r *PaymentRepositoryImpl) sums(db *gorm.DB, userID string) ([]ledgerRow, error) {
	query := db.Model(&models.Payment{}).
		Select("user_id, type, status, COALESCE(SUM(amount), 0) AS total").
		Where("status IN ?", []models.PaymentStatus{models.PaymentStatusCompleted, models.PaymentStatusPending})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var rows []ledgerRow
	err := query.Group("user_id, type, status").Scan(&rows).Error
	return rows, err
}

func accumulate(totals *LedgerTotals, row ledgerRow) {
	switch {
	case row.Type == models.PaymentTypeTaskPayment && row.Status == models.PaymentStatusCompleted:
		totals.Credited = totals.Credited.Add(row.Total)
	case row.Type == models.PaymentTypeWithdrawal && row.Status == models.PaymentStatusCompleted:
		totals.Withdrawn = totals.Withdrawn.Add(row.Total)
	case row.Type == models.PaymentTypeWithdrawal && row.Status == models.PaymentStatusPending:
		totals.PendingWithdrawal = totals.PendingWithdrawal.Add(row.Total)
	}
}

func (r *PaymentRepositoryImpl) SumByUser(db *gorm.DB, userID string) (*LedgerTotals, error) {
	rows, err := r.sums(db, userID)
	if err != nil {
		return nil, err
	}
	totals := &LedgerTotals{}
	for _, row := range rows {
		accumulate(totals, row)
	}
	return totals, nil
}

func (r *PaymentRepositoryImpl) SumAllByUser(db *gorm.DB) (map[string]*LedgerTotals, error) {
	rows, err := r.sums(db, "")
	if err != nil {
		return nil, err
	}
	result := make(map[string]*LedgerTotals)
	for _, row := range rows {
		totals, ok := result[row.UserID]
		if !ok {
			totals = &LedgerTotals{}
			result[row.UserID] = totals
		}
		accumulate(totals, row)
	}
	return result, nil
}

func (r *PaymentRepositoryImpl) PendingWithdrawals(db *gorm.DB) (int64, decimal.Decimal, error) {
	var row struct {
		Count int64
		Total decimal.Decimal
	}
	err := db.Model(&models.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND status = ?", models.PaymentTypeWithdrawal, models.PaymentStatusPending).
		Scan(&row).Error
	return row.Count, row.Total, err
}
