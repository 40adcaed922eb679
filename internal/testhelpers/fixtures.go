package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"gigwork_backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// UserOption донастраивает фикстуру перед сохранением
type UserOption func(*models.User)

func WithBalance(amount int64) UserOption {
	return func(u *models.User) { u.Balance = decimal.NewFromInt(amount) }
}

func WithStatus(status models.AccountStatus) UserOption {
	return func(u *models.User) { u.AccountStatus = status }
}

func WithDemoCompleted() UserOption {
	return func(u *models.User) {
		u.DemoTaskCompleted = true
		u.DemoTaskScore = 85
	}
}

func WithSkills(skills ...string) UserOption {
	return func(u *models.User) { u.Skills = models.StringList(skills) }
}

func WithUPI(upiID string) UserOption {
	return func(u *models.User) {
		u.PayoutAccount = models.PayoutAccount{AccountType: models.PayoutAccountUPI, UPIID: upiID}
	}
}

func WithEmail(email string) UserOption {
	return func(u *models.User) { u.Email = email }
}

// CreateUser создает пользователя с паролем DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole, opts ...UserOption) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Email:             fmt.Sprintf("%s_%s@test.com", role, uuid.NewString()[:8]),
		PasswordHash:      string(hash),
		AuthProvider:      models.AuthProviderEmail,
		FullName:          "Test " + string(role),
		Phone:             "+10000000000",
		Skills:            models.StringList([]string{"React"}),
		Experience:        "intermediate",
		Timezone:          "UTC",
		PreferredCurrency: "USD",
		Role:              role,
		AccountStatus:     models.AccountStatusActive,
		KnowledgeScore:    decimal.NewFromInt(100),
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateWorker(t *testing.T, db *gorm.DB, opts ...UserOption) *models.User {
	t.Helper()
	return CreateUser(t, db, models.UserRoleWorker, opts...)
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, models.UserRoleAdmin)
}

// CreateTask создает доступную задачу с выплатой payout USD
func CreateTask(t *testing.T, db *gorm.DB, adminID string, payout int64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:        "Landing page",
		Description:  "Build a landing page",
		Category:     "development",
		Skills:       models.StringList([]string{"React"}),
		WeeklyPayout: decimal.NewFromInt(payout),
		Deadline:     time.Now().Add(7 * 24 * time.Hour),
		Status:       models.TaskStatusAvailable,
		CreatedBy:    adminID,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// ReloadUser перечитывает пользователя из базы
func ReloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func ReloadTask(t *testing.T, db *gorm.DB, id string) *models.Task {
	t.Helper()
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	return &task
}
