package handlers

import (
	"net/http"

	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile lookups and follow/unfollow requests
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterProfileRoutes registers profile and follow routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, auth, optional echo.MiddlewareFunc) {
	g.GET("/profiles/:username", h.GetProfile, optional)
	g.POST("/profiles/:username/follow", h.FollowUser, auth)
	g.DELETE("/profiles/:username/follow", h.UnfollowUser, auth)
}

// GetProfile retrieves a user's public profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	resp, err := h.profiles.Get(c.Request().Context(), c.Param("username"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// FollowUser follows a user
func (h *ProfileHandler) FollowUser(c echo.Context) error {
	return h.setFollow(c, true)
}

// UnfollowUser unfollows a user
func (h *ProfileHandler) UnfollowUser(c echo.Context) error {
	return h.setFollow(c, false)
}

func (h *ProfileHandler) setFollow(c echo.Context, on bool) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.profiles.SetFollow(c.Request().Context(), c.Param("username"), userID, on)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
