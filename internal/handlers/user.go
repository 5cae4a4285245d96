package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the authenticated user
type UserHandler struct {
	users    *services.UserService
	activity *services.ActivityService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, activity *services.ActivityService) *UserHandler {
	return &UserHandler{users: users, activity: activity}
}

// RegisterUserRoutes registers current-user routes, all behind auth
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/user", h.GetCurrentUser, auth)
	g.PUT("/user", h.UpdateCurrentUser, auth)
	g.GET("/user/activity", h.GetActivity, auth)
}

// GetCurrentUser retrieves the authenticated user
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.users.Current(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateCurrentUser updates the authenticated user
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.users.Update(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetActivity lists the authenticated user's latest actions
func (h *UserHandler) GetActivity(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
	}

	resp, err := h.activity.Recent(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
