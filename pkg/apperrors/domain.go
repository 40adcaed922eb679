package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки бизнес-логики по доменам.
*/

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - оборачивает ошибку репозитория в 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - 409
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - операция невозможна в текущем статусе (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Auth
// =========================================================================

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrSessionExpired = New(
	CodeSessionExpired,
	"auth",
	"Session expired, please log in again",
	http.StatusUnauthorized,
)

var ErrAccountSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"auth",
	"Too many requests. Please slow down.",
	http.StatusTooManyRequests,
)

var ErrAccountTerminated = New(
	CodeForbidden,
	"auth",
	"Your account has been terminated",
	http.StatusForbidden,
)

// =========================================================================
// Users / workers
// =========================================================================

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrWorkerNotFound = New(CodeNotFound, "worker", "Worker not found", http.StatusNotFound)

var ErrNotAWorker = New(
	CodeInvalidOperation,
	"worker",
	"Operation is only available for worker accounts",
	http.StatusBadRequest,
)

var ErrAccountStatusFinal = New(
	CodeInvalidStatus,
	"worker",
	"Terminated accounts cannot change status",
	http.StatusConflict,
)

// =========================================================================
// Tasks
// =========================================================================

var ErrTaskNotFound = New(CodeNotFound, "task", "Task not found", http.StatusNotFound)

var ErrTaskNotAssigned = New(
	CodeInvalidOperation,
	"task",
	"Task has no assigned worker",
	http.StatusBadRequest,
)

var ErrTaskNotOwned = New(
	CodeForbidden,
	"task",
	"Task is not assigned to you",
	http.StatusForbidden,
)

// =========================================================================
// Payments / ledger
// =========================================================================

var ErrPaymentNotFound = New(CodeNotFound, "payment", "Payment not found", http.StatusNotFound)

var ErrInsufficientBalance = New(
	CodeInsufficientBalance,
	"payment",
	"Insufficient balance",
	http.StatusConflict,
)

var ErrNotAWithdrawal = New(
	CodeInvalidOperation,
	"payment",
	"Payment is not a withdrawal",
	http.StatusBadRequest,
)

var ErrPayoutAccountMissing = New(
	CodeInvalidOperation,
	"payment",
	"Add payout account details before requesting a withdrawal",
	http.StatusBadRequest,
)

// =========================================================================
// Onboarding
// =========================================================================

var ErrQuizFailed = New(
	CodeQualificationFailed,
	"onboarding",
	"Knowledge test score is below the passing mark",
	http.StatusUnprocessableEntity,
)

// QuizFailed - ErrQuizFailed с результатом теста в деталях
func QuizFailed(details interface{}) *AppError {
	return ErrQuizFailed.WithDetails(details)
}

var ErrExpertiseRequired = New(
	CodeInvalidOperation,
	"onboarding",
	"Choose your expertise before starting the demo task",
	http.StatusBadRequest,
)

var ErrDemoAlreadyCompleted = New(
	CodeInvalidOperation,
	"onboarding",
	"Demo task already completed",
	http.StatusConflict,
)

var ErrDemoNotCompleted = New(
	CodeForbidden,
	"onboarding",
	"Complete the demo task to access paid tasks",
	http.StatusForbidden,
)

// =========================================================================
// Daily submissions
// =========================================================================

var ErrSubmissionNotFound = New(CodeNotFound, "daily_submission", "Daily submission not found", http.StatusNotFound)

var ErrSubmissionExists = New(
	CodeAlreadyExists,
	"daily_submission",
	"A daily submission for this date already exists",
	http.StatusConflict,
)
