package handlers

import (
	"net/http"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth, optional echo.MiddlewareFunc) {
	g.POST("/articles/:slug/comments", h.CreateComment, auth)
	g.GET("/articles/:slug/comments", h.GetComments, optional)
	g.DELETE("/articles/:slug/comments/:id", h.DeleteComment, auth)
}

// CreateComment creates a new comment on an article
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.comments.Create(c.Request().Context(), c.Param("slug"), req, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetComments lists the comments of an article
func (h *CommentHandler) GetComments(c echo.Context) error {
	resp, err := h.comments.List(c.Request().Context(), c.Param("slug"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteComment deletes a comment written by the current user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	commentID, err := parseID(c, "id", "Invalid comment ID")
	if err != nil {
		return err
	}

	resp, err := h.comments.Delete(c.Request().Context(), c.Param("slug"), commentID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
