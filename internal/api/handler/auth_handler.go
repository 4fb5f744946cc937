package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scrapeapi/accounts-api/internal/api/metrics"
	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// tokenRequest is the OAuth2 password grant form.
type tokenRequest struct {
	Username  string `form:"username" validate:"required"`
	Password  string `form:"password" validate:"required"`
	GrantType string `form:"grant_type" validate:"omitempty,eq=password"`
	Scope     string `form:"scope"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token exchanges a username and password for a bearer access token.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username    formData  string  true   "User name"
// @Param        password    formData  string  true   "Password"
// @Param        grant_type  formData  string  false  "Must be \"password\" when present"
// @Success      200         {object}  tokenResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      422         {object}  ErrorResponse
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultDenied).Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultError).Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}
