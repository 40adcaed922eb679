package dto

import (
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"

	"github.com/shopspring/decimal"
)

type PayoutAccountResponse struct {
	AccountType   models.PayoutAccountType `json:"account_type"`
	AccountName   string                   `json:"account_name,omitempty"`
	AccountNumber string                   `json:"account_number,omitempty"`
	IFSC          string                   `json:"ifsc,omitempty"`
	UPIID         string                   `json:"upi_id,omitempty"`
	Verified      bool                     `json:"verified"`
}

// UserResponse - профиль пользователя. Суммы в базе и в валюте пользователя.
type UserResponse struct {
	ID                    string                 `json:"id"`
	Email                 string                 `json:"email"`
	AuthProvider          models.AuthProvider    `json:"auth_provider"`
	FullName              string                 `json:"full_name"`
	Phone                 string                 `json:"phone"`
	Skills                []string               `json:"skills"`
	Experience            string                 `json:"experience"`
	Timezone              string                 `json:"timezone"`
	PreferredWeeklyPayout money.Amount           `json:"preferred_weekly_payout"`
	PreferredCurrency     string                 `json:"preferred_currency"`
	Role                  models.UserRole        `json:"role"`
	AccountStatus         models.AccountStatus   `json:"account_status"`
	KnowledgeScore        decimal.Decimal        `json:"knowledge_score"`
	DemoTaskCompleted     bool                   `json:"demo_task_completed"`
	DemoTaskScore         int                    `json:"demo_task_score"`
	Balance               money.Amount           `json:"balance"`
	PayoutAccount         *PayoutAccountResponse `json:"payout_account,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	currency := money.Currency(u.PreferredCurrency)
	resp := UserResponse{
		ID:                    u.ID,
		Email:                 u.Email,
		AuthProvider:          u.AuthProvider,
		FullName:              u.FullName,
		Phone:                 u.Phone,
		Skills:                u.SkillList(),
		Experience:            u.Experience,
		Timezone:              u.Timezone,
		PreferredWeeklyPayout: money.NewAmount(u.PreferredWeeklyPayout, currency),
		PreferredCurrency:     u.PreferredCurrency,
		Role:                  u.Role,
		AccountStatus:         u.AccountStatus,
		KnowledgeScore:        u.KnowledgeScore,
		DemoTaskCompleted:     u.DemoTaskCompleted,
		DemoTaskScore:         u.DemoTaskScore,
		Balance:               money.NewAmount(u.Balance, currency),
		CreatedAt:             u.CreatedAt,
	}
	if u.PayoutAccount.AccountType != "" {
		resp.PayoutAccount = &PayoutAccountResponse{
			AccountType:   u.PayoutAccount.AccountType,
			AccountName:   u.PayoutAccount.AccountName,
			AccountNumber: u.PayoutAccount.AccountNumber,
			IFSC:          u.PayoutAccount.IFSC,
			UPIID:         u.PayoutAccount.UPIID,
			Verified:      u.PayoutAccount.Verified,
		}
	}
	return resp
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
