package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler     *HealthHandler
	AuthHandler       *AuthHandler
	OnboardingHandler *OnboardingHandler
	TaskHandler       *TaskHandler
	PaymentHandler    *PaymentHandler
	WorkerHandler     *WorkerHandler
	SubmissionHandler *SubmissionHandler
}
