package httperr

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

func TestKindOfSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("propose: %w", SlotConflict("time_conflict"))

	assert.Equal(t, KindSlotConflict, KindOf(err))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestRetryableOnlyForBackend(t *testing.T) {
	var be BusinessError
	require.True(t, errors.As(BackendUnavailable("backend_unavailable", errors.New("timeout")), &be))
	assert.True(t, be.Retryable())

	require.True(t, errors.As(SlotConflict("time_conflict"), &be))
	assert.False(t, be.Retryable())
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: AlreadyExists("tenant_already_exists"), status: http.StatusConflict, code: "tenant_already_exists"},
		{err: NotFound("employee_not_found"), status: http.StatusNotFound, code: "employee_not_found"},
		{err: InvalidInput("empty_services"), status: http.StatusBadRequest, code: "empty_services"},
		{err: IllegalTransition("invalid_status_transition"), status: http.StatusUnprocessableEntity, code: "invalid_status_transition"},
		{err: SlotConflict("time_conflict"), status: http.StatusConflict, code: "time_conflict"},
		{err: BackendUnavailable("backend_unavailable", errors.New("x")), status: http.StatusServiceUnavailable, code: "backend_unavailable"},
		{err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
