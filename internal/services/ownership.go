package services

import (
	"errors"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

type owned interface {
	OwnerID() uint
}

// AssertArticleOwner takes the result of a slug lookup and returns the article when the
// requester authored it. forbidden is the message used on denial.
func AssertArticleOwner(article *models.Article, lookupErr error, requesterID uint, forbidden string) (*models.Article, error) {
	if err := lookupFailed(article == nil, lookupErr, errs.ArticleNotFound); err != nil {
		return nil, err
	}
	if err := checkOwner(article, requesterID, forbidden); err != nil {
		return nil, err
	}
	return article, nil
}

// AssertCommentOwner takes the result of a comment id lookup and returns the comment when it
// belongs to articleID and the requester authored it. A comment of another article is reported
// as missing.
func AssertCommentOwner(comment *models.Comment, lookupErr error, articleID, requesterID uint) (*models.Comment, error) {
	if err := lookupFailed(comment == nil, lookupErr, errs.CommentNotFound); err != nil {
		return nil, err
	}
	if comment.ArticleID != articleID {
		return nil, errs.New(errs.NotFound, errs.CommentNotFound)
	}
	if err := checkOwner(comment, requesterID, errs.CommentForbiddenDelete); err != nil {
		return nil, err
	}
	return comment, nil
}

func lookupFailed(missing bool, lookupErr error, notFound string) error {
	switch {
	case lookupErr == nil && !missing:
		return nil
	case lookupErr == nil, errors.Is(lookupErr, repositories.ErrNotFound):
		return errs.New(errs.NotFound, notFound)
	default:
		return internal(lookupErr)
	}
}

func checkOwner(resource owned, requesterID uint, forbidden string) error {
	if resource.OwnerID() != requesterID {
		return errs.New(errs.Forbidden, forbidden)
	}
	return nil
}
