package services

import (
	"context"
	"strings"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"

	"gorm.io/gorm"
)

// ctxOf - контекст запроса, привязанный к db через WithContext
func ctxOf(db *gorm.DB) context.Context {
	if db == nil || db.Statement == nil || db.Statement.Context == nil {
		return context.Background()
	}
	return db.Statement.Context
}

// nowFunc подменяется в тестах
var nowFunc = time.Now

func now() time.Time {
	return nowFunc().UTC()
}

func currencyOf(u *models.User) money.Currency {
	c, err := money.ParseCurrency(u.PreferredCurrency)
	if err != nil {
		return money.BaseCurrency
	}
	return c
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
