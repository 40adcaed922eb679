package services_test

import (
	"testing"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/services/dto"
	"gigwork_backend/internal/testhelpers"
	"gigwork_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatus_ActivateAndTerminate(t *testing.T) {
	env := newTestEnv(t)
	worker := testhelpers.CreateWorker(t, env.db, testhelpers.WithStatus(models.AccountStatusPending))

	resp, err := env.workers.UpdateStatus(env.db, worker.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusActive})
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusActive, resp.AccountStatus)

	_, err = env.workers.UpdateStatus(env.db, worker.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusTerminated})
	require.NoError(t, err)

	// terminated - финальный статус
	_, err = env.workers.UpdateStatus(env.db, worker.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusActive})
	assert.ErrorIs(t, err, apperrors.ErrAccountStatusFinal)
	assert.Equal(t, models.AccountStatusTerminated, testhelpers.ReloadUser(t, env.db, worker.ID).AccountStatus)

	assert.Equal(t, []string{"status:active", "status:terminated"}, env.notifier.Events())
}

func TestUpdateStatus_SuspendClosesSessions(t *testing.T) {
	env := newTestEnv(t)
	worker := testhelpers.CreateWorker(t, env.db)

	login, err := env.auth.Login(env.db, &dto.LoginRequest{Email: worker.Email, Password: testhelpers.DefaultPassword})
	require.NoError(t, err)

	_, err = env.workers.UpdateStatus(env.db, worker.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusSuspended})
	require.NoError(t, err)

	_, err = env.auth.Authenticate(env.db, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestUpdateStatus_OnlyWorkers(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)

	_, err := env.workers.UpdateStatus(env.db, admin.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusSuspended})
	assert.ErrorIs(t, err, apperrors.ErrWorkerNotFound)

	_, err = env.workers.UpdateStatus(env.db, admin.ID, &dto.UpdateWorkerStatusRequest{Status: models.AccountStatusPending})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestListWorkers_FilterByStatus(t *testing.T) {
	env := newTestEnv(t)
	testhelpers.CreateAdmin(t, env.db)
	testhelpers.CreateWorker(t, env.db)
	pending := testhelpers.CreateWorker(t, env.db, testhelpers.WithStatus(models.AccountStatusPending))

	all, err := env.workers.ListWorkers(env.db, &dto.WorkerListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyPending, err := env.workers.ListWorkers(env.db, &dto.WorkerListQuery{Status: string(models.AccountStatusPending)})
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, pending.ID, onlyPending[0].ID)
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	admin := testhelpers.CreateAdmin(t, env.db)
	worker := testhelpers.CreateWorker(t, env.db, testhelpers.WithUPI("w@upi"))
	testhelpers.CreateWorker(t, env.db, testhelpers.WithStatus(models.AccountStatusPending))

	earn(t, env, admin, worker, 100)
	testhelpers.CreateTask(t, env.db, admin.ID, 50)
	_, err := env.ledger.RequestWithdrawal(env.db, sessionFor(worker), &dto.WithdrawalRequest{Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	stats, err := env.workers.GetStats(env.db, sessionFor(admin))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalWorkers)
	assert.Equal(t, int64(1), stats.ActiveWorkers)
	assert.Equal(t, int64(1), stats.PendingWorkers)
	assert.Equal(t, int64(2), stats.TotalTasks)
	assert.Equal(t, int64(1), stats.CompletedTasks)
	assert.Equal(t, int64(1), stats.AvailableTasks)
	assert.Equal(t, int64(1), stats.PendingWithdrawals)
	assert.Equal(t, "30.00", stats.PendingAmount.Base)
}
