package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/scrapeapi/accounts-api/internal/api/middleware"
	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A missing
// value means the route was mounted without the middleware; treat it as
// unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
