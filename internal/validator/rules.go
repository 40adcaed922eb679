package validator

import (
	"log"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/money"
	"gigwork_backend/internal/qualification"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные теги валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Статусы из statuses.go
	mustRegister("is-task-status", oneOf(
		models.TaskStatusAvailable, models.TaskStatusInProgress, models.TaskStatusSubmitted,
		models.TaskStatusCompleted, models.TaskStatusRejected,
	))
	mustRegister("is-payment-status", oneOf(
		models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed,
	))
	mustRegister("is-payment-type", oneOf(
		models.PaymentTypeTaskPayment, models.PaymentTypeWithdrawal,
	))
	mustRegister("is-account-status", oneOf(
		models.AccountStatusPending, models.AccountStatusActive,
		models.AccountStatusSuspended, models.AccountStatusTerminated,
	))
	mustRegister("is-work-type", oneOf(
		models.WorkTypeDevelopment, models.WorkTypeDesign, models.WorkTypeVideoEditing,
		models.WorkTypeContent, models.WorkTypeOther,
	))
	mustRegister("is-payout-type", oneOf(
		models.PayoutAccountBank, models.PayoutAccountUPI,
	))

	mustRegister("is-currency", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || money.Currency(value).Valid()
	})
	mustRegister("is-expertise", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || qualification.IsExpertise(value)
	})
	mustRegister("is-date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(time.DateOnly, value)
		return err == nil
	})
}

// oneOf - пустое значение пропускается, для этого есть 'required'
func oneOf[T ~string](allowed ...T) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[string(a)] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	}
}
