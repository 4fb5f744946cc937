package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scrapeapi/accounts-api/internal/core/service"
	"github.com/scrapeapi/accounts-api/internal/infrastructure/db/memory"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	repo := memory.NewUserRepository()
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := service.NewJWTManager("test-secret", 15*time.Minute)
	log := zerolog.Nop()

	return NewRouter(Dependencies{
		Auth:  service.NewAuthService(repo, hasher, tokens, 30*time.Minute, log),
		Users: service.NewUserService(repo, hasher, log),
		Log:   log,
	})
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, e *echo.Echo, name, password, email string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"name":"` + name + `","password":"` + password + `","email":"` + email + `"}`
	req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return serve(e, req)
}

func requestToken(e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return serve(e, req)
}

func TestRouter_Root(t *testing.T) {
	e := newTestRouter(t)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestRouter_AccountLifecycle(t *testing.T) {
	e := newTestRouter(t)

	rec := createUser(t, e, "bob", "pw1", "bob@x.io")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"User created successfully!"}`, rec.Body.String())

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/user/bob", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	require.Equal(t, "bob", stored["name"])
	require.Equal(t, "bob@x.io", stored["email"])
	require.NotEqual(t, "pw1", stored["password"])
	require.True(t, strings.HasPrefix(stored["password"].(string), "$2"))

	rec = requestToken(e, "bob", "pw1")
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	for _, path := range []string{"/users/me/", "/users/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.AccessToken)
		rec = serve(e, req)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var me map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		require.Equal(t, "bob", me["name"], path)
	}
}

func TestRouter_Me_RequiresToken(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/users/me/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec = serve(e, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"could not validate credentials"}`, rec.Body.String())
}

func TestRouter_Token_FailuresAreIndistinguishable(t *testing.T) {
	e := newTestRouter(t)
	require.Equal(t, http.StatusOK, createUser(t, e, "bob", "pw1", "bob@x.io").Code)

	wrongPassword := requestToken(e, "bob", "nope")
	unknownUser := requestToken(e, "mallory", "pw1")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, wrongPassword.Code, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	require.Equal(t, "Bearer", wrongPassword.Header().Get(echo.HeaderWWWAuthenticate))
	require.Equal(t, "Bearer", unknownUser.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestRouter_GetUser_NotFound(t *testing.T) {
	e := newTestRouter(t)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/user/ghost", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
}

func TestRouter_CreateUser_Validation(t *testing.T) {
	e := newTestRouter(t)

	rec := createUser(t, e, "bob", "pw1", "not-an-email")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = serve(e, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	e := newTestRouter(t)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
