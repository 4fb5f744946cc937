package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scrapeapi/accounts-api/internal/api/metrics"
	"github.com/scrapeapi/accounts-api/internal/core/domain"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

// ContextKeyUser holds the *domain.User resolved from the bearer token.
const ContextKeyUser = "user"

// Auth resolves the bearer token into a user and injects it into the context.
// Every token problem, including a missing header, yields domain.ErrUnauthorized.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenValidationsTotal.WithLabelValues(metrics.ResultDenied).Inc()
				return domain.ErrUnauthorized
			}

			user, err := auth.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.TokenValidationsTotal.WithLabelValues(metrics.ResultDenied).Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues(metrics.ResultError).Inc()
				}
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
