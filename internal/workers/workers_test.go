package workers_test

import (
	"context"
	"testing"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/testhelpers"
	"gigwork_backend/internal/workers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerWorker_RunOnceReportsDrift(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	drifted := testhelpers.CreateWorker(t, db, testhelpers.WithBalance(75))
	testhelpers.CreateWorker(t, db)

	ledger := services.NewLedgerService(repositories.NewPaymentRepository(), repositories.NewUserRepository(), nil)
	w := workers.NewLedgerWorker(db, ledger, time.Minute)

	report, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Workers)
	require.Len(t, report.Drifts, 1)
	assert.Equal(t, drifted.ID, report.Drifts[0].UserID)

	// Сверка только читает
	assert.True(t, testhelpers.ReloadUser(t, db, drifted.ID).Balance.Equal(decimal.NewFromInt(75)))
}

func TestSessionWorker_RunOnceDeletesExpired(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateWorker(t, db)
	now := time.Now().UTC()

	expired := &models.Session{UserID: user.ID, ExpiresAt: now.Add(-time.Hour)}
	alive := &models.Session{UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(alive).Error)

	repo := repositories.NewSessionRepository()
	w := workers.NewSessionWorker(db, repo, time.Minute)

	deleted, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(db, expired.ID)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
	_, err = repo.FindByID(db, alive.ID)
	assert.NoError(t, err)
}
