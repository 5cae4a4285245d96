package services

import (
	"errors"
	"testing"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertArticleOwner(t *testing.T) {
	article := &models.Article{ID: 7, AuthorID: 1}

	tests := []struct {
		name      string
		article   *models.Article
		lookupErr error
		requester uint
		wantKind  errs.Kind
		wantMsg   string
	}{
		{name: "owner", article: article, requester: 1},
		{name: "other user", article: article, requester: 2, wantKind: errs.Forbidden, wantMsg: errs.ArticleForbiddenUpdate},
		{name: "missing", lookupErr: repositories.ErrNotFound, requester: 1, wantKind: errs.NotFound, wantMsg: errs.ArticleNotFound},
		{name: "nil without error", requester: 1, wantKind: errs.NotFound, wantMsg: errs.ArticleNotFound},
		{name: "store failure", lookupErr: errors.New("disk on fire"), requester: 1, wantKind: errs.Internal, wantMsg: errs.InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssertArticleOwner(tt.article, tt.lookupErr, tt.requester, errs.ArticleForbiddenUpdate)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Same(t, tt.article, got)
				return
			}
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
			var appErr *errs.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantMsg, appErr.Public())
		})
	}
}

func TestAssertCommentOwner(t *testing.T) {
	comment := &models.Comment{ID: 3, AuthorID: 1, ArticleID: 10}

	tests := []struct {
		name      string
		comment   *models.Comment
		lookupErr error
		articleID uint
		requester uint
		wantKind  errs.Kind
		wantErr   bool
	}{
		{name: "owner on the right article", comment: comment, articleID: 10, requester: 1},
		{name: "missing comment", lookupErr: repositories.ErrNotFound, articleID: 10, requester: 1, wantKind: errs.NotFound, wantErr: true},
		{name: "other article", comment: comment, articleID: 11, requester: 1, wantKind: errs.NotFound, wantErr: true},
		{name: "other article and other user", comment: comment, articleID: 11, requester: 2, wantKind: errs.NotFound, wantErr: true},
		{name: "other user", comment: comment, articleID: 10, requester: 2, wantKind: errs.Forbidden, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssertCommentOwner(tt.comment, tt.lookupErr, tt.articleID, tt.requester)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Same(t, tt.comment, got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
		})
	}
}
