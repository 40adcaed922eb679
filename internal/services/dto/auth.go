package dto

import (
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/qualification"

	"github.com/shopspring/decimal"
)

// ProfileFields - анкета воркера, общая для обоих вариантов регистрации
type ProfileFields struct {
	FullName              string          `json:"full_name" validate:"required,max=120"`
	Phone                 string          `json:"phone" validate:"required,max=32"`
	Skills                []string        `json:"skills" validate:"required,min=1,dive,required"`
	Experience            string          `json:"experience" validate:"required"`
	Timezone              string          `json:"timezone" validate:"required"`
	PreferredWeeklyPayout decimal.Decimal `json:"preferred_weekly_payout" validate:"required,gt=0"`
	PreferredCurrency     string          `json:"preferred_currency" validate:"omitempty,is-currency"`

	// Индексы выбранных ответов теста, по порядку вопросов
	QuizAnswers []int `json:"quiz_answers" validate:"required,min=1"`
}

// SignupRequest - регистрация по email и паролю
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	ProfileFields
}

// ExternalIdentityRequest - результат входа у внешнего провайдера
type ExternalIdentityRequest struct {
	Provider      models.AuthProvider `json:"provider" validate:"required,oneof=google github"`
	UID           string              `json:"uid" validate:"required"`
	Email         string              `json:"email" validate:"required,email"`
	EmailVerified bool                `json:"email_verified"`
	DisplayName   string              `json:"display_name"`
}

// ExternalSignupRequest - регистрация через Google/GitHub
type ExternalSignupRequest struct {
	Identity ExternalIdentityRequest `json:"identity"`
	ProfileFields
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ExternalLoginRequest struct {
	Identity ExternalIdentityRequest `json:"identity"`
}

type UpdateCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,is-currency"`
}

// AuthResponse - токен сессии и профиль
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SignupResponse - результат регистрации. Auth заполнен только для внешних аккаунтов.
type SignupResponse struct {
	User UserResponse          `json:"user"`
	Quiz *qualification.Result `json:"quiz"`
	Auth *AuthResponse         `json:"auth,omitempty"`
}
