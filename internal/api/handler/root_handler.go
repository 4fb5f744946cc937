package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the envelope every failed request is answered with.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Root handles GET /.
//
// @Summary      Root placeholder
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"hello": "world"})
}
