package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gigwork_backend/internal/app"
	"gigwork_backend/internal/config"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/testhelpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	router *gin.Engine
}

func newClient(t *testing.T) (*client, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.RateLimit.AuthPerMinute = 0

	a, err := app.Build(cfg, testhelpers.NewTestDB(t))
	require.NoError(t, err)
	return &client{t: t, router: a.Router}, a
}

// do выполняет запрос и декодирует JSON ответа в out (если не nil)
func (c *client) do(method, path, token string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if out != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (c *client) login(email, password string) string {
	c.t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	code := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	}, &resp)
	require.Equal(c.t, http.StatusOK, code)
	require.NotEmpty(c.t, resp.Token)
	return resp.Token
}

type amount struct {
	Base string `json:"base"`
}

type errorBody struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

// Полный путь: регистрация -> одобрение -> задача -> выплата
func TestWorkerLifecycle(t *testing.T) {
	c, a := newClient(t)
	admin := testhelpers.CreateAdmin(t, a.DB)
	adminToken := c.login(admin.Email, testhelpers.DefaultPassword)

	// 1. Регистрация: React -> вопросы dev, все ответы верные
	var signup struct {
		User struct {
			ID            string `json:"id"`
			AccountStatus string `json:"account_status"`
		} `json:"user"`
		Quiz struct {
			Set    string `json:"set"`
			Score  string `json:"score"`
			Passed bool   `json:"passed"`
		} `json:"quiz"`
	}
	code := c.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]interface{}{
		"email":                   "asha@example.com",
		"password":                "password123",
		"full_name":               "Asha Rao",
		"phone":                   "+910000000000",
		"skills":                  []string{"React"},
		"experience":              "intermediate",
		"timezone":                "Asia/Kolkata",
		"preferred_weekly_payout": "500",
		"preferred_currency":      "USD",
		"quiz_answers":            []int{1, 0, 2},
	}, &signup)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "pending", signup.User.AccountStatus)
	assert.Equal(t, "dev", signup.Quiz.Set)
	assert.Equal(t, "100", signup.Quiz.Score)
	assert.True(t, signup.Quiz.Passed)
	workerID := signup.User.ID

	workerToken := c.login("asha@example.com", "password123")

	// Платные задачи закрыты до демо-задания
	var denied errorBody
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/v1/tasks", workerToken, nil, &denied))
	assert.Equal(t, "FORBIDDEN", denied.Error.Code)

	// 2. Онбординг
	assert.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/onboarding/expertise", workerToken,
		map[string]string{"expertise": "Developer"}, nil))
	var demo struct {
		Score int `json:"score"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/onboarding/demo-task", workerToken,
		map[string]string{"submission": "https://github.com/asha/todo"}, &demo))
	assert.GreaterOrEqual(t, demo.Score, 70)

	// 3. Одобрение админом
	var worker struct {
		AccountStatus string `json:"account_status"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/admin/workers/"+workerID+"/status", adminToken,
		map[string]string{"status": "active"}, &worker))
	assert.Equal(t, "active", worker.AccountStatus)

	// 4. Задача на 500
	var task struct {
		ID           string  `json:"id"`
		Status       string  `json:"status"`
		AssignedTo   *string `json:"assigned_to"`
		WeeklyPayout amount  `json:"weekly_payout"`
	}
	code = c.do(http.MethodPost, "/api/v1/admin/tasks", adminToken, map[string]interface{}{
		"title":         "Landing page",
		"description":   "Build the landing page",
		"category":      "development",
		"skills":        []string{"React"},
		"weekly_payout": 500,
		"deadline":      time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	}, &task)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "available", task.Status)
	assert.Nil(t, task.AssignedTo)
	assert.Equal(t, "500.00", task.WeeklyPayout.Base)

	var balance struct {
		Balance amount `json:"balance"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/payments/balance", workerToken, nil, &balance))
	assert.Equal(t, "0.00", balance.Balance.Base)

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/admin/tasks/"+task.ID+"/assign", adminToken,
		map[string]string{"worker_id": workerID}, &task))
	assert.Equal(t, "in-progress", task.Status)

	// Повторное назначение отклоняется
	var conflict errorBody
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/admin/tasks/"+task.ID+"/assign", adminToken,
		map[string]string{"worker_id": workerID}, &conflict))
	assert.Equal(t, "INVALID_STATUS", conflict.Error.Code)

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/tasks/"+task.ID+"/submit", workerToken,
		map[string]string{"submission_url": "https://github.com/asha/landing"}, &task))
	assert.Equal(t, "submitted", task.Status)

	var approved struct {
		Task    struct{ Status string } `json:"task"`
		Payment struct {
			Type   string `json:"type"`
			Status string `json:"status"`
			Amount amount `json:"amount"`
		} `json:"payment"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/admin/tasks/"+task.ID+"/approve", adminToken, nil, &approved))
	assert.Equal(t, "completed", approved.Task.Status)
	assert.Equal(t, "task-payment", approved.Payment.Type)
	assert.Equal(t, "completed", approved.Payment.Status)
	assert.Equal(t, "500.00", approved.Payment.Amount.Base)

	// 5. Баланс 0 -> 500, одна выплата за задачу
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/payments/balance", workerToken, nil, &balance))
	assert.Equal(t, "500.00", balance.Balance.Base)

	var payments []struct {
		Type   string `json:"type"`
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/payments", workerToken, nil, &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, "task-payment", payments[0].Type)
	assert.Equal(t, "completed", payments[0].Status)

	var report struct {
		Drifts []interface{} `json:"drifts"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/admin/ledger/reconcile", adminToken, nil, &report))
	assert.Empty(t, report.Drifts)
}

func TestFailedQuizCreatesNoAccount(t *testing.T) {
	c, _ := newClient(t)

	var body errorBody
	code := c.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]interface{}{
		"email":                   "low@example.com",
		"password":                "password123",
		"full_name":               "Low Score",
		"phone":                   "+10000000000",
		"skills":                  []string{"React"},
		"experience":              "beginner",
		"timezone":                "UTC",
		"preferred_weekly_payout": 100,
		"quiz_answers":            []int{0, 1, 0},
	}, &body)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "QUALIFICATION_FAILED", body.Error.Code)

	var loginErr errorBody
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "low@example.com", "password": "password123"}, &loginErr))
}

func TestAuthGuards(t *testing.T) {
	c, a := newClient(t)
	worker := testhelpers.CreateWorker(t, a.DB, testhelpers.WithDemoCompleted())

	var body errorBody
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/tasks", "", nil, &body))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/tasks", "garbage", nil, &body))
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)

	token := c.login(worker.Email, testhelpers.DefaultPassword)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/tasks", token, nil, nil))
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/v1/admin/stats", token, nil, &body))

	var validation struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/payments/withdrawals", token,
		map[string]interface{}{"amount": 0}, &validation))
	assert.Equal(t, "VALIDATION_FAILED", validation.Error.Code)
	assert.Contains(t, validation.Error.Details, "amount")

	// После логаута токен не принимается
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/auth/logout", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/auth/me", token, nil, &body))
	assert.Equal(t, "SESSION_EXPIRED", body.Error.Code)
}

func TestSuspendedWorkerIsBlocked(t *testing.T) {
	c, a := newClient(t)
	worker := testhelpers.CreateWorker(t, a.DB,
		testhelpers.WithDemoCompleted(), testhelpers.WithStatus("suspended"))

	// Вход разрешен, чтобы воркер видел свой статус
	token := c.login(worker.Email, testhelpers.DefaultPassword)
	var me struct {
		AccountStatus string `json:"account_status"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/auth/me", token, nil, &me))
	assert.Equal(t, "suspended", me.AccountStatus)

	var body errorBody
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/v1/tasks", token, nil, &body))
}
