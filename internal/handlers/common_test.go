// internal/handlers/common_test.go
package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/services"
)

func runErrorMapping(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	handleServiceError(c, err)
	return w
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"item not found", services.ErrItemNotFound, http.StatusNotFound},
		{"swap not found", services.ErrSwapNotFound, http.StatusNotFound},
		{"profile not found", services.ErrProfileNotFound, http.StatusNotFound},
		{"notification not found", services.ErrNotificationNotFound, http.StatusNotFound},

		{"item already reviewed", models.ErrItemNotPending, http.StatusConflict},
		{"swap already processed", models.ErrSwapNotPending, http.StatusConflict},
		{"swap not accepted", models.ErrSwapNotAccepted, http.StatusConflict},
		{"duplicate user", services.ErrUserExists, http.StatusConflict},

		{"item unavailable", models.ErrItemNotAvailable, http.StatusBadRequest},
		{"insufficient points", services.ErrInsufficientPoints, http.StatusBadRequest},
		{"own item", services.ErrOwnItem, http.StatusBadRequest},
		{"item not owned", services.ErrItemNotOwned, http.StatusBadRequest},

		{"not a participant", services.ErrNotSwapParticipant, http.StatusForbidden},
		{"not the owner", services.ErrNotSwapOwner, http.StatusForbidden},
		{"own admin status", services.ErrOwnAdminStatus, http.StatusForbidden},

		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", services.ErrAccountInactive, http.StatusUnauthorized},

		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runErrorMapping(tt.err)
			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestHandleServiceErrorMatchesWrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), services.ErrInsufficientPoints)
	w := runErrorMapping(wrapped)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
