package models

type UserRole string
type AccountStatus string
type AuthProvider string
type TaskStatus string
type PaymentType string
type PaymentStatus string
type WorkType string
type PayoutAccountType string

const (
	UserRoleWorker UserRole = "worker"
	UserRoleAdmin  UserRole = "admin"

	AccountStatusPending    AccountStatus = "pending"
	AccountStatusActive     AccountStatus = "active"
	AccountStatusSuspended  AccountStatus = "suspended"
	AccountStatusTerminated AccountStatus = "terminated"

	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderGithub AuthProvider = "github"

	TaskStatusAvailable  TaskStatus = "available"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusSubmitted  TaskStatus = "submitted"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusRejected   TaskStatus = "rejected"

	PaymentTypeTaskPayment PaymentType = "task-payment"
	PaymentTypeWithdrawal  PaymentType = "withdrawal"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	WorkTypeDevelopment  WorkType = "development"
	WorkTypeDesign       WorkType = "design"
	WorkTypeVideoEditing WorkType = "video-editing"
	WorkTypeContent      WorkType = "content"
	WorkTypeOther        WorkType = "other"

	PayoutAccountBank PayoutAccountType = "bank"
	PayoutAccountUPI  PayoutAccountType = "upi"
)

// IsFinal - из completed и rejected переходов нет
func (s TaskStatus) IsFinal() bool {
	return s == TaskStatusCompleted || s == TaskStatusRejected
}

// Reviewable - статусы, из которых админ может одобрить или отклонить задачу
func (s TaskStatus) Reviewable() bool {
	return s == TaskStatusSubmitted || s == TaskStatusInProgress
}

// IsBlocked - аккаунт не может работать с задачами
func (s AccountStatus) IsBlocked() bool {
	return s == AccountStatusSuspended || s == AccountStatusTerminated
}
