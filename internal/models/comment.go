package models

import "time"

// Comment represents a comment on an article
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	ArticleID uint      `json:"article_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership guard contract.
func (c *Comment) OwnerID() uint { return c.AuthorID }

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	ArticleID uint      `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    Profile   `json:"author"`
}

func (c *Comment) ToView(following bool) CommentView {
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    c.Author.ToProfile(following),
	}
}

type CommentResponse struct {
	Comment CommentView `json:"comment"`
}

type CommentsResponse struct {
	Comments []CommentView `json:"comments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
