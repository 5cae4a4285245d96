package services

import (
	"context"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

const msgCommentDeleted = "Comment deleted successfully"

type CommentService struct {
	comments repositories.CommentRepository
	articles repositories.ArticleRepository
	follows  repositories.FollowRepository
	activity *ActivityService
	clock    Clock
}

func NewCommentService(
	comments repositories.CommentRepository,
	articles repositories.ArticleRepository,
	follows repositories.FollowRepository,
	activity *ActivityService,
	clock Clock,
) *CommentService {
	return &CommentService{comments: comments, articles: articles, follows: follows, activity: activity, clock: clock}
}

// Create adds a comment by userID to the article identified by slug.
func (s *CommentService) Create(ctx context.Context, slug string, req models.CreateCommentRequest, userID uint) (*models.CommentResponse, error) {
	article, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}

	now := s.clock.Now()
	comment := &models.Comment{
		Body:      req.Body,
		AuthorID:  userID,
		ArticleID: article.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, internal(err)
	}
	s.activity.Record(ctx, userID, models.ActionCommentCreated, "article", slug)

	return &models.CommentResponse{Comment: comment.ToView(false)}, nil
}

// List returns the comments of an article, newest first. viewerID may be nil.
func (s *CommentService) List(ctx context.Context, slug string, viewerID *uint) (*models.CommentsResponse, error) {
	article, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}
	comments, err := s.comments.GetCommentsByArticleID(ctx, article.ID)
	if err != nil {
		return nil, internal(err)
	}

	following := map[uint]bool{}
	if viewerID != nil && len(comments) > 0 {
		authorIDs := make([]uint, 0, len(comments))
		for _, c := range comments {
			authorIDs = append(authorIDs, c.AuthorID)
		}
		if following, err = s.follows.FollowingAmong(ctx, *viewerID, authorIDs); err != nil {
			return nil, internal(err)
		}
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].ToView(following[comments[i].AuthorID]))
	}
	return &models.CommentsResponse{Comments: views}, nil
}

// Delete removes a comment. The comment must belong to the article in the path and be
// authored by userID.
func (s *CommentService) Delete(ctx context.Context, slug string, commentID, userID uint) (*models.MessageResponse, error) {
	article, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}
	found, lookupErr := s.comments.GetCommentByID(ctx, commentID)
	if _, err := AssertCommentOwner(found, lookupErr, article.ID, userID); err != nil {
		return nil, err
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return nil, storeError(err, errs.CommentNotFound, "")
	}
	s.activity.Record(ctx, userID, models.ActionCommentDeleted, "article", slug)
	return &models.MessageResponse{Message: msgCommentDeleted}, nil
}
