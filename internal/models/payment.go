package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment - запись леджера: начисление за задачу или вывод средств
type Payment struct {
	BaseModel
	UserID       string          `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type         PaymentType     `gorm:"type:varchar(20);not null;index"`
	Status       PaymentStatus   `gorm:"type:varchar(20);not null;index"`
	TaskID       *string         `gorm:"type:uuid;index"`
	PayoutMethod string
	CompletedAt  *time.Time
}
