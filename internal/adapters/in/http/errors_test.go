package http_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	feedmehttp "feedme/internal/adapters/in/http"
	"feedme/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: errs.NewValueIsInvalidError("price"), want: http.StatusBadRequest},
		{name: "required", err: errs.NewValueIsRequiredError("name"), want: http.StatusBadRequest},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("rating", 6, 1, 5), want: http.StatusBadRequest},
		{name: "joined validation", err: errors.Join(errs.NewValueIsRequiredError("name"), errs.NewValueIsInvalidError("price")), want: http.StatusBadRequest},
		{name: "unauthenticated", err: feedmehttp.ErrMissingToken, want: http.StatusUnauthorized},
		{name: "forbidden", err: errs.NewAuthorizationError("delete order"), want: http.StatusForbidden},
		{name: "not found", err: fmt.Errorf("load: %w", errs.NewObjectNotFoundError("meal", "42")), want: http.StatusNotFound},
		{name: "conflict", err: errs.NewConflictError("email"), want: http.StatusConflict},
		{name: "echo error", err: echo.NewHTTPError(http.StatusMethodNotAllowed), want: http.StatusMethodNotAllowed},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, feedmehttp.StatusFor(tc.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	handler := feedmehttp.NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()

	t.Run("domain errors keep their message", func(t *testing.T) {
		// Arrange
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/meals/1", nil), rec)

		// Act
		handler(errs.NewObjectNotFoundError("meal", "1"), c)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"code":404,"message":"object not found: 1"}`, rec.Body.String())
	})

	t.Run("echo errors use their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/meals", nil), rec)

		handler(echo.NewHTTPError(http.StatusBadRequest, "price must be at least 0"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"message":"price must be at least 0"}`, rec.Body.String())
	})

	t.Run("internal errors are masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil), rec)

		handler(errors.New("pq: connection refused"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq")
	})

	t.Run("head requests have no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodHead, "/api/v1/meals", nil), rec)

		handler(errs.NewAuthorizationError("browse"), c)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}
