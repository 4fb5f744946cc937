package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scrapeapi/accounts-api/internal/api/metrics"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

// UserHandler serves account lookup and creation.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Get handles GET /user/:username.
//
// @Summary      Get a user by name
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "User name"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /user/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /user. The password is hashed before it is stored.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New account"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := h.userService.Create(c.Request().Context(), req.Name, req.Password, req.Email); err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User created successfully!"})
}

// Me handles GET /users/me/ and returns the user owning the bearer token.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
