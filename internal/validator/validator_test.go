package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string          `json:"title" validate:"required"`
	Status   string          `json:"status" validate:"omitempty,is-task-status"`
	Currency string          `json:"currency" validate:"is-currency"`
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Date     string          `json:"date" validate:"omitempty,is-date"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sample{
		Title:    "x",
		Status:   "in-progress",
		Currency: "INR",
		Amount:   decimal.NewFromInt(5),
		Date:     "2025-01-31",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(&sample{
		Status:   "archived",
		Currency: "EUR",
		Amount:   decimal.NewFromInt(-1),
		Date:     "31/01/2025",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["title"])
	assert.Equal(t, "Unsupported value", vErr.Errors["status"])
	assert.Equal(t, "Unsupported value", vErr.Errors["currency"])
	assert.Contains(t, vErr.Errors, "amount")
	assert.Contains(t, vErr.Errors, "date")
}
