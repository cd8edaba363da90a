package httputil

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/paylink/terminal/internal/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "payment not found"), http.StatusNotFound},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusUnprocessableEntity},
		{"unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "session expired"), http.StatusUnauthorized},
		{"forbidden", apperrors.Wrap(apperrors.ErrForbidden, "invalid signature"), http.StatusForbidden},
		{"expired", apperrors.Wrap(apperrors.ErrExpired, "link expired"), http.StatusGone},
		{"bad gateway", fmt.Errorf("create: %w", apperrors.ErrBadGateway), http.StatusBadGateway},
		{"too many requests", apperrors.ErrTooManyRequests, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "forbidden hides detail",
			err:            apperrors.Wrap(apperrors.ErrForbidden, "invalid webhook secret"),
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"forbidden","message":"The request could not be authenticated"}`,
		},
		{
			name:           "invalid input exposes validation message",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "amount: cannot be blank"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"invalid_input","message":"amount: cannot be blank: invalid input"}`,
		},
		{
			name:           "internal error hides detail",
			err:            errors.New("database password is hunter2"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal_error","message":"An internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/webhook", nil)

			HandleErrorGin(c, tt.err, slog.Default())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		HandleErrorGin(c, nil, nil)
		assert.Equal(t, 0, w.Body.Len())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid JSON body"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid JSON body"}`, w.Body.String())
}
