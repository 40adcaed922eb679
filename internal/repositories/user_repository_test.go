package repositories_test

import (
	"errors"
	"sync"
	"testing"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	existing := testhelpers.CreateWorker(t, db)

	err := repo.Create(db, &models.User{Email: existing.Email, Role: models.UserRoleWorker})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)
}

func TestUserRepository_CreateConcurrentSameEmail(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(db, &models.User{Email: "same@test.com", Role: models.UserRoleWorker})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, repositories.ErrUserAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 4, conflicts)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	_, err := repo.FindByID(db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_UpdateIgnoresBalance(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	worker := testhelpers.CreateWorker(t, db, testhelpers.WithBalance(10))

	err := repo.Update(db, worker.ID, map[string]interface{}{
		"full_name": "Renamed",
		"balance":   decimal.NewFromInt(1_000_000),
	})
	require.NoError(t, err)

	reloaded := testhelpers.ReloadUser(t, db, worker.ID)
	assert.Equal(t, "Renamed", reloaded.FullName)
	assert.True(t, decimal.NewFromInt(10).Equal(reloaded.Balance))
}

func TestUserRepository_AdjustBalance_Concurrent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	worker := testhelpers.CreateWorker(t, db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AdjustBalance(db, worker.ID, decimal.NewFromInt(50)))
		}()
	}
	wg.Wait()

	reloaded := testhelpers.ReloadUser(t, db, worker.ID)
	assert.True(t, decimal.NewFromInt(500).Equal(reloaded.Balance), "balance %s", reloaded.Balance)
}

func TestUserRepository_DebitBalance(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	worker := testhelpers.CreateWorker(t, db, testhelpers.WithBalance(100))

	require.NoError(t, repo.DebitBalance(db, worker.ID, decimal.NewFromInt(60)))

	err := repo.DebitBalance(db, worker.ID, decimal.NewFromInt(60))
	assert.ErrorIs(t, err, repositories.ErrInsufficientBalance)

	err = repo.DebitBalance(db, "00000000-0000-0000-0000-000000000000", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	reloaded := testhelpers.ReloadUser(t, db, worker.ID)
	assert.True(t, decimal.NewFromInt(40).Equal(reloaded.Balance))
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	testhelpers.CreateAdmin(t, db)
	testhelpers.CreateWorker(t, db)
	testhelpers.CreateWorker(t, db, testhelpers.WithStatus(models.AccountStatusPending))

	workers, err := repo.List(db, repositories.UserFilter{Role: models.UserRoleWorker})
	require.NoError(t, err)
	assert.Len(t, workers, 2)

	pending, err := repo.Count(db, repositories.UserFilter{
		Role:          models.UserRoleWorker,
		AccountStatus: models.AccountStatusPending,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}
