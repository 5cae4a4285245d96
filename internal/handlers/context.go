package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/medium-clone/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's id, or 0 when the request is anonymous.
func getUserIDFromContext(c echo.Context) uint {
	if claims := middleware.Claims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// viewerID is the optional-auth form of getUserIDFromContext.
func viewerID(c echo.Context) *uint {
	id := getUserIDFromContext(c)
	if id == 0 {
		return nil
	}
	return &id
}

func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func parseID(c echo.Context, param, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, message)
	}
	return uint(id), nil
}
