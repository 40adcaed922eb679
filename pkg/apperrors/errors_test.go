package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	withDetails := ErrQuizFailed.WithDetails(map[string]int{"score": 33})

	assert.Nil(t, ErrQuizFailed.Details)
	assert.NotNil(t, withDetails.Details)
	assert.ErrorIs(t, withDetails, ErrQuizFailed)
	assert.NotErrorIs(t, withDetails, ErrDemoNotCompleted)
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("approve: %w", ErrInsufficientBalance.WithError(errors.New("balance 10")))

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, IsCode(err, CodeInsufficientBalance))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeInternalError))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	render := func(err error) (int, map[string]interface{}) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
		HandleError(c, err)

		var body map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body["error"]
	}

	t.Run("app error keeps code and details", func(t *testing.T) {
		code, body := render(NewValidationFieldError("amount", "Must be greater than 0"))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
		assert.Equal(t, "validation", body["domain"])
		assert.Equal(t, map[string]interface{}{"amount": "Must be greater than 0"}, body["details"])
	})

	t.Run("unknown error is masked", func(t *testing.T) {
		code, body := render(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
		assert.Equal(t, "Internal server error", body["message"])
		assert.NotContains(t, body, "details")
	})

	t.Run("invalid status is a conflict", func(t *testing.T) {
		code, body := render(ErrInvalidStatus("task", "Task is not available"))
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "INVALID_STATUS", body["code"])
	})
}
