package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/scrapeapi/accounts-api/internal/api/handler"
	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	NewHTTPErrorHandler(zerolog.Nop())(err, e.NewContext(req, rec))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"wrapped not found", fmt.Errorf("get: %w", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect username or password"},
		{"unauthorized", errors.Join(domain.ErrUnauthorized, errors.New("token is expired")), http.StatusUnauthorized, "could not validate credentials"},
		{"password too long", domain.ErrPasswordTooLong, http.StatusUnprocessableEntity, domain.ErrPasswordTooLong.Error()},
		{"storage", domain.NewStorageError("find user", errors.New("connection refused")), http.StatusInternalServerError, "database error: connection refused"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runErrorHandler(t, http.MethodGet, tt.err)
			require.Equal(t, tt.code, rec.Code)
			require.Equal(t, tt.message, decodeError(t, rec))
		})
	}
}

func TestHTTPErrorHandler_BearerChallengeOnlyOn401(t *testing.T) {
	rec := runErrorHandler(t, http.MethodGet, domain.ErrUnauthorized)
	require.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = runErrorHandler(t, http.MethodGet, echo.ErrUnauthorized)
	require.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = runErrorHandler(t, http.MethodGet, domain.ErrUserNotFound)
	require.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := runErrorHandler(t, http.MethodHead, domain.ErrUserNotFound)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, rec.Body.Len())
}
