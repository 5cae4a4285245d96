package handlers

import (
	"net/http"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ArticleHandler handles HTTP requests related to articles and favorites
type ArticleHandler struct {
	articles *services.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// RegisterArticleRoutes registers article routes. auth rejects anonymous requests; optional
// only identifies the viewer.
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group, auth, optional echo.MiddlewareFunc) {
	g.GET("/articles", h.ListArticles, optional)
	g.POST("/articles", h.CreateArticle, auth)
	g.GET("/articles/:slug", h.GetArticle, optional)
	g.PUT("/articles/:slug", h.UpdateArticle, auth)
	g.DELETE("/articles/:slug", h.DeleteArticle, auth)
	g.POST("/articles/:slug/favorite", h.FavoriteArticle, auth)
	g.DELETE("/articles/:slug/favorite", h.UnfavoriteArticle, auth)
}

// ListArticles lists articles filtered by tag, author and favorited user
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	var q models.ListArticlesQuery
	if err := c.Bind(&q); err != nil {
		return err
	}

	resp, err := h.articles.List(c.Request().Context(), q, viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateArticle creates a new article authored by the current user
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateArticleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.articles.Create(c.Request().Context(), req, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetArticle retrieves an article by slug
func (h *ArticleHandler) GetArticle(c echo.Context) error {
	resp, err := h.articles.Get(c.Request().Context(), c.Param("slug"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateArticle updates an article owned by the current user
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateArticleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.articles.Update(c.Request().Context(), c.Param("slug"), req, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteArticle deletes an article owned by the current user and returns it
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.articles.Delete(c.Request().Context(), c.Param("slug"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// FavoriteArticle marks an article as a favorite of the current user
func (h *ArticleHandler) FavoriteArticle(c echo.Context) error {
	return h.setFavorite(c, true)
}

// UnfavoriteArticle removes an article from the current user's favorites
func (h *ArticleHandler) UnfavoriteArticle(c echo.Context) error {
	return h.setFavorite(c, false)
}

func (h *ArticleHandler) setFavorite(c echo.Context, on bool) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.articles.SetFavorite(c.Request().Context(), c.Param("slug"), userID, on)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
