package services_test

import (
	"context"
	"sync"
	"testing"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/qualification"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/session"
	"gigwork_backend/internal/testhelpers"

	"gorm.io/gorm"
)

// recordingNotifier запоминает события вместо отправки писем
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) add(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func (n *recordingNotifier) AccountStatusChanged(_ context.Context, u *models.User) {
	n.add("status:" + string(u.AccountStatus))
}
func (n *recordingNotifier) TaskAssigned(context.Context, *models.User, *models.Task) {
	n.add("assigned")
}
func (n *recordingNotifier) TaskApproved(context.Context, *models.User, *models.Task) {
	n.add("approved")
}
func (n *recordingNotifier) TaskRejected(context.Context, *models.User, *models.Task) {
	n.add("rejected")
}
func (n *recordingNotifier) WithdrawalProcessed(_ context.Context, _ *models.User, p *models.Payment) {
	n.add("withdrawal:" + string(p.Status))
}

type testEnv struct {
	db       *gorm.DB
	notifier *recordingNotifier

	auth        services.AuthService
	tasks       services.TaskService
	ledger      services.LedgerService
	onboarding  services.OnboardingService
	workers     services.WorkerService
	submissions services.SubmissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	notifier := &recordingNotifier{}

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	taskRepo := repositories.NewTaskRepository()
	paymentRepo := repositories.NewPaymentRepository()

	ledger := services.NewLedgerService(paymentRepo, userRepo, notifier)

	return &testEnv{
		db:          db,
		notifier:    notifier,
		auth:        services.NewAuthService(userRepo, sessionRepo),
		tasks:       services.NewTaskService(taskRepo, userRepo, ledger, notifier),
		ledger:      ledger,
		onboarding:  services.NewOnboardingService(userRepo, qualification.FixedScorer(88)),
		workers:     services.NewWorkerService(userRepo, taskRepo, paymentRepo, sessionRepo, notifier),
		submissions: services.NewSubmissionService(repositories.NewDailySubmissionRepository()),
	}
}

func sessionFor(u *models.User) *session.Session {
	return &session.Session{ID: "test-session-" + u.ID, User: *u}
}

func (e *testEnv) onboardingWithScorer(scorer qualification.DemoScorer) services.OnboardingService {
	return services.NewOnboardingService(repositories.NewUserRepository(), scorer)
}
