package dto

import (
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest - сумма в валюте Currency (по умолчанию базовая)
type WithdrawalRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency string          `json:"currency" validate:"omitempty,is-currency"`
}

type PayoutAccountRequest struct {
	AccountType   models.PayoutAccountType `json:"account_type" validate:"required,is-payout-type"`
	AccountName   string                   `json:"account_name" validate:"required_if=AccountType bank"`
	AccountNumber string                   `json:"account_number" validate:"required_if=AccountType bank"`
	IFSC          string                   `json:"ifsc" validate:"required_if=AccountType bank"`
	UPIID         string                   `json:"upi_id" validate:"required_if=AccountType upi"`
}

type PaymentListQuery struct {
	UserID string `form:"user_id" json:"user_id"`
	Type   string `form:"type" json:"type" validate:"omitempty,is-payment-type"`
	Status string `form:"status" json:"status" validate:"omitempty,is-payment-status"`
}

type PaymentResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	Amount       money.Amount         `json:"amount"`
	Type         models.PaymentType   `json:"type"`
	Status       models.PaymentStatus `json:"status"`
	TaskID       *string              `json:"task_id,omitempty"`
	PayoutMethod string               `json:"payout_method,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
}

func NewPaymentResponse(p *models.Payment, currency money.Currency) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Amount:       money.NewAmount(p.Amount, currency),
		Type:         p.Type,
		Status:       p.Status,
		TaskID:       p.TaskID,
		PayoutMethod: p.PayoutMethod,
		CreatedAt:    p.CreatedAt,
		CompletedAt:  p.CompletedAt,
	}
}

func NewPaymentResponses(payments []models.Payment, currency money.Currency) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentResponse(&payments[i], currency))
	}
	return out
}

// BalanceSummary - кэшированный баланс против баланса по леджеру
type BalanceSummary struct {
	UserID            string       `json:"user_id"`
	Balance           money.Amount `json:"balance"`
	LedgerBalance     money.Amount `json:"ledger_balance"`
	TotalEarned       money.Amount `json:"total_earned"`
	TotalWithdrawn    money.Amount `json:"total_withdrawn"`
	PendingWithdrawal money.Amount `json:"pending_withdrawal"`
	Available         money.Amount `json:"available"`
}

// BalanceDrift - расхождение кэша баланса с леджером
type BalanceDrift struct {
	UserID        string          `json:"user_id"`
	Email         string          `json:"email"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Difference    decimal.Decimal `json:"difference"`
}

type ReconcileReport struct {
	CheckedAt time.Time      `json:"checked_at"`
	Workers   int            `json:"workers"`
	Drifts    []BalanceDrift `json:"drifts"`
}

func (r *ReconcileReport) Consistent() bool {
	return len(r.Drifts) == 0
}
