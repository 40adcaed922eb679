package services

import (
	"gigwork_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService       AuthService
	TaskService       TaskService
	LedgerService     LedgerService
	OnboardingService OnboardingService
	WorkerService     WorkerService
	SubmissionService SubmissionService
	Notifier          Notifier
	EmailProvider     email.Provider
}
