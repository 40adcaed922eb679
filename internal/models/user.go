package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email         string       `gorm:"uniqueIndex;not null"`
	PasswordHash  string       // пусто для аккаунтов через внешнего провайдера
	AuthProvider  AuthProvider `gorm:"type:varchar(20);not null;default:'email'"`
	ExternalID    string       `gorm:"index"`
	EmailVerified bool         `gorm:"default:false"`

	FullName              string
	Phone                 string
	Skills                datatypes.JSON
	Experience            string
	Timezone              string
	PreferredWeeklyPayout decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PreferredCurrency     string          `gorm:"type:varchar(3);not null;default:'USD'"`

	Role          UserRole      `gorm:"type:varchar(20);not null;index"`
	AccountStatus AccountStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	KnowledgeScore    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DemoTaskCompleted bool            `gorm:"default:false"`
	DemoTaskScore     int             `gorm:"default:0"`

	// Меняется только через атомарные операции репозитория
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PayoutAccount PayoutAccount `gorm:"embedded;embeddedPrefix:payout_"`
}

type PayoutAccount struct {
	AccountType   PayoutAccountType `gorm:"column:account_type;type:varchar(10)"`
	AccountName   string            `gorm:"column:account_name"`
	AccountNumber string            `gorm:"column:account_number"`
	IFSC          string            `gorm:"column:ifsc"`
	UPIID         string            `gorm:"column:upi_id"`
	Verified      bool              `gorm:"column:verified;default:false"`
}

// IsSet - реквизиты для вывода заполнены
func (p PayoutAccount) IsSet() bool {
	switch p.AccountType {
	case PayoutAccountBank:
		return p.AccountNumber != "" && p.IFSC != ""
	case PayoutAccountUPI:
		return p.UPIID != ""
	}
	return false
}

// Describe - снимок реквизитов для записи в платеж
func (p PayoutAccount) Describe() string {
	switch p.AccountType {
	case PayoutAccountBank:
		return "bank:" + p.AccountName + ":" + maskTail(p.AccountNumber) + ":" + p.IFSC
	case PayoutAccountUPI:
		return "upi:" + p.UPIID
	}
	return ""
}

func maskTail(s string) string {
	if len(s) <= 4 {
		return s
	}
	return "****" + s[len(s)-4:]
}

func (u *User) SkillList() []string {
	return ParseStringList(u.Skills)
}

func (u *User) HasSkill(skill string) bool {
	for _, s := range u.SkillList() {
		if s == skill {
			return true
		}
	}
	return false
}
