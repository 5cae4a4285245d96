package models

import (
	"strings"
	"time"
)

// Article is a post owned by its author. Slug is unique and derived from the title.
type Article struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:2048"`
	Body        string    `json:"body" gorm:"type:text"`
	TagList     string    `json:"-" gorm:"column:tag_list;size:1024"` // comma-joined, matched by substring
	AuthorID    uint      `json:"author_id" gorm:"index;not null"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerID implements the ownership guard contract.
func (a *Article) OwnerID() uint { return a.AuthorID }

// Tags splits the denormalized tag list.
func (a *Article) Tags() []string {
	tags := []string{}
	for _, t := range strings.Split(a.TagList, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of Tags. Empty and duplicate tags are dropped.
func JoinTags(tags []string) string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

// CreateArticleRequest defines the request body for creating a new article
type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required,max=2048"`
	Body        string   `json:"body" validate:"required"`
	TagList     []string `json:"tagList,omitempty" validate:"omitempty,dive,required,excludesall=0x2C,max=64"`
}

// UpdateArticleRequest defines the request body for updating an existing article
type UpdateArticleRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2048"`
	Body        *string  `json:"body,omitempty"`
	TagList     []string `json:"tagList,omitempty" validate:"omitempty,dive,required,excludesall=0x2C,max=64"`
}

// ListArticlesQuery carries the listing filters. Zero Limit means the default.
type ListArticlesQuery struct {
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
	Tag       string `query:"tag"`
	Author    string `query:"author"`
	Favorited string `query:"favorited"`
}

// ArticleView is an article enriched for a viewer.
type ArticleView struct {
	ID             uint      `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// ToView maps an article and its enrichment to the response shape.
func (a *Article) ToView(favorited bool, favoritesCount int64, following bool) ArticleView {
	return ArticleView{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        a.Tags(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: favoritesCount,
		Author:         a.Author.ToProfile(following),
	}
}

type ArticleResponse struct {
	Article ArticleView `json:"article"`
}

// PageMeta describes a page of a listing.
type PageMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type ArticleList struct {
	Data    []ArticleView `json:"data"`
	Meta    PageMeta      `json:"meta"`
	Message string        `json:"message"`
}
