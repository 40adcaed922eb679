// Package money держит валютную арифметику. Все суммы в базе хранятся в USD,
// конвертация для отображения считается на лету и никогда не сохраняется.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	USD Currency = "USD"
	INR Currency = "INR"

	BaseCurrency = USD
)

// INRRate - фиксированный курс USD -> INR
var INRRate = decimal.NewFromInt(89)

var symbols = map[Currency]string{
	USD: "$",
	INR: "₹",
}

// ParseCurrency нормализует код валюты, пустая строка дает базовую валюту
func ParseCurrency(code string) (Currency, error) {
	switch c := Currency(strings.ToUpper(strings.TrimSpace(code))); c {
	case "":
		return BaseCurrency, nil
	case USD, INR:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", code)
	}
}

func (c Currency) Valid() bool {
	return c == USD || c == INR
}

func rate(c Currency) decimal.Decimal {
	if c == INR {
		return INRRate
	}
	return decimal.NewFromInt(1)
}

// ToDisplay переводит сумму из базовой валюты в валюту отображения
func ToDisplay(amount decimal.Decimal, c Currency) decimal.Decimal {
	return amount.Mul(rate(c)).Round(2)
}

// ToBase переводит введенную сумму в базовую валюту
func ToBase(amount decimal.Decimal, c Currency) decimal.Decimal {
	return amount.DivRound(rate(c), 2)
}

// Format - сумма базовой валюты в виде строки для валюты отображения: $12.00, ₹1068.00
func Format(amount decimal.Decimal, c Currency) string {
	if !c.Valid() {
		c = BaseCurrency
	}
	return symbols[c] + ToDisplay(amount, c).StringFixed(2)
}

// Amount - пара "база + отображение" для ответов API
type Amount struct {
	Base      string   `json:"base"`
	Display   string   `json:"display"`
	Currency  Currency `json:"currency"`
	Formatted string   `json:"formatted"`
}

func NewAmount(amount decimal.Decimal, c Currency) Amount {
	if !c.Valid() {
		c = BaseCurrency
	}
	return Amount{
		Base:      amount.StringFixed(2),
		Display:   ToDisplay(amount, c).StringFixed(2),
		Currency:  c,
		Formatted: Format(amount, c),
	}
}
