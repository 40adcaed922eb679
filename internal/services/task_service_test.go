package services_test

import (
	"sync"
	"testing"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/testhelpers"
	"gigwork_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTaskRequest() *dto.CreateTaskRequest {
	return &dto.CreateTaskRequest{
		Title:        "Landing page",
		Description:  "Build a responsive landing page",
		Category:     "development",
		Skills:       []string{"React"},
		WeeklyPayout: decimal.NewFromInt(500),
		Deadline:     time.Now().Add(72 * time.Hour),
	}
}

func TestCreateTask_StartsAvailable(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)

	resp, err := env.tasks.CreateTask(env.db, sessionFor(admin), createTaskRequest())
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusAvailable, resp.Status)
	assert.Nil(t, resp.AssignedTo)
	assert.Equal(t, admin.ID, resp.CreatedBy)
	assert.Equal(t, "500.00", resp.WeeklyPayout.Base)
}

func TestCreateTask_ConvertsDisplayCurrency(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)

	req := createTaskRequest()
	req.WeeklyPayout = decimal.NewFromInt(44500)
	req.Currency = "INR"

	resp, err := env.tasks.CreateTask(env.db, sessionFor(admin), req)
	require.NoError(t, err)

	task := testhelpers.ReloadTask(t, env.db, resp.ID)
	assert.Equal(t, "500.00", task.WeeklyPayout.StringFixed(2))
}

func TestCreateTask_RequiresCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)

	req := createTaskRequest()
	req.Category = "   "

	_, err := env.tasks.CreateTask(env.db, sessionFor(admin), req)
	require.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "category")

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTask_RequiresSkills(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)

	req := createTaskRequest()
	req.Skills = []string{"  "}

	_, err := env.tasks.CreateTask(env.db, sessionFor(admin), req)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignTask(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	other := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	resp, err := env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, resp.Status)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, worker.ID, *resp.AssignedTo)
	assert.NotNil(t, resp.AssignedAt)
	assert.Equal(t, []string{"assigned"}, env.notifier.Events())

	// Повторное назначение уже занятой задачи отклоняется
	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: other.ID})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))
	reloaded := testhelpers.ReloadTask(t, env.db, task.ID)
	assert.True(t, reloaded.IsAssignedTo(worker.ID))
}

func TestAssignTask_UnknownOrNonWorker(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	_, err := env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrWorkerNotFound)

	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: admin.ID})
	assert.ErrorIs(t, err, apperrors.ErrWorkerNotFound)

	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: ""})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestSubmitTask(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	stranger := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	// Еще не назначена
	_, err := env.tasks.SubmitTask(env.db, sessionFor(worker), task.ID, &dto.SubmitTaskRequest{SubmissionURL: "https://x"})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotOwned)

	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)

	_, err = env.tasks.SubmitTask(env.db, sessionFor(stranger), task.ID, &dto.SubmitTaskRequest{SubmissionURL: "https://x"})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotOwned)

	resp, err := env.tasks.SubmitTask(env.db, sessionFor(worker), task.ID, &dto.SubmitTaskRequest{SubmissionURL: "https://github.com/a/b"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusSubmitted, resp.Status)
	assert.Equal(t, "https://github.com/a/b", resp.SubmissionURL)

	// Повторная сдача из submitted запрещена
	_, err = env.tasks.SubmitTask(env.db, sessionFor(worker), task.ID, &dto.SubmitTaskRequest{SubmissionURL: "https://again"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))
}

func TestApproveTask_CreditsWorker(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	_, err := env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)

	resp, err := env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, resp.Task.Status)
	assert.NotNil(t, resp.Task.CompletedAt)
	assert.Equal(t, models.PaymentTypeTaskPayment, resp.Payment.Type)
	assert.Equal(t, models.PaymentStatusCompleted, resp.Payment.Status)
	assert.Equal(t, "500.00", resp.Payment.Amount.Base)

	user := testhelpers.ReloadUser(t, env.db, worker.ID)
	assert.Equal(t, "500.00", user.Balance.StringFixed(2))

	var payments []models.Payment
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Find(&payments).Error)
	assert.Len(t, payments, 1)

	// Второе одобрение: задача уже completed
	_, err = env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))
}

func TestApproveTask_UnassignedChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	_, err := env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotAssigned)

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, models.TaskStatusAvailable, testhelpers.ReloadTask(t, env.db, task.ID).Status)
}

func TestApproveTask_ConcurrentApprovalsPayOnce(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 250)

	_, err := env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)

	const attempts = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, "250.00", testhelpers.ReloadUser(t, env.db, worker.ID).Balance.StringFixed(2))

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRejectTask_IsFinal(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	_, err := env.tasks.RejectTask(env.db, sessionFor(admin), task.ID, &dto.RejectTaskRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))

	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)

	resp, err := env.tasks.RejectTask(env.db, sessionFor(admin), task.ID, &dto.RejectTaskRequest{Feedback: "Missing tests"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusRejected, resp.Status)
	assert.Equal(t, "Missing tests", resp.Feedback)

	_, err = env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))
	assert.True(t, testhelpers.ReloadUser(t, env.db, worker.ID).Balance.IsZero())
}

func TestGetAndListTasks_WorkerSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	mine := testhelpers.CreateTask(t, env.db, admin.ID, 100)
	theirs := testhelpers.CreateTask(t, env.db, admin.ID, 200)

	_, err := env.tasks.AssignTask(env.db, sessionFor(admin), mine.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)

	list, err := env.tasks.ListTasks(env.db, sessionFor(worker), &dto.TaskListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = env.tasks.GetTask(env.db, sessionFor(worker), theirs.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	all, err := env.tasks.ListTasks(env.db, sessionFor(admin), &dto.TaskListQuery{Status: string(models.TaskStatusAvailable)})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, theirs.ID, all[0].ID)
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 100)

	require.NoError(t, env.tasks.DeleteTask(env.db, task.ID))
	assert.ErrorIs(t, env.tasks.DeleteTask(env.db, task.ID), apperrors.ErrTaskNotFound)
}

func TestDeleteTask_KeepsIssuedPayment(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db)
	task := testhelpers.CreateTask(t, env.db, admin.ID, 250)

	_, err := env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: worker.ID})
	require.NoError(t, err)
	_, err = env.tasks.ApproveTask(env.db, sessionFor(admin), task.ID)
	require.NoError(t, err)

	require.NoError(t, env.tasks.DeleteTask(env.db, task.ID))

	var payments []models.Payment
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].TaskID)
	assert.Equal(t, task.ID, *payments[0].TaskID)
	assert.Equal(t, "250.00", payments[0].Amount.StringFixed(2))

	user := testhelpers.ReloadUser(t, env.db, worker.ID)
	assert.Equal(t, "250.00", user.Balance.StringFixed(2))

	report, err := env.ledger.Reconcile(env.db)
	require.NoError(t, err)
	assert.True(t, report.Consistent())
}

func TestSuggestWorkers(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	best := testhelpers.CreateWorker(t, env.db, testhelpers.WithDemoCompleted())
	testhelpers.CreateWorker(t, env.db, testhelpers.WithDemoCompleted(), testhelpers.WithSkills("Figma"))
	testhelpers.CreateWorker(t, env.db) // без демо-задания
	task := testhelpers.CreateTask(t, env.db, admin.ID, 500)

	matches, err := env.tasks.SuggestWorkers(env.db, task.ID, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, best.ID, matches[0].Worker.ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)

	_, err = env.tasks.AssignTask(env.db, sessionFor(admin), task.ID, &dto.AssignTaskRequest{WorkerID: best.ID})
	require.NoError(t, err)
	_, err = env.tasks.SuggestWorkers(env.db, task.ID, 10)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))
}
