package handlers

import (
	"net/http"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	articles *services.ArticleService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(articles *services.ArticleService) *FeedHandler {
	return &FeedHandler{articles: articles}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/articles/feed", h.GetFeed, auth)
}

// GetFeed returns the articles of authors the current user follows, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var q models.ListArticlesQuery
	if err := c.Bind(&q); err != nil {
		return err
	}

	resp, err := h.articles.Feed(c.Request().Context(), q, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
