package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Article is a news story as stored and served by the API
type Article struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	AuthorID      string    `json:"-"`
	Author        *Author   `json:"author,omitempty"`
	Category      string    `json:"category"`
	PublishDate   time.Time `json:"publishDate"`
	LastUpdated   time.Time `json:"lastUpdated"`
	FeaturedImage string    `json:"featuredImage"`
	Views         int       `json:"views"`
	IsFeatured    bool      `json:"isFeatured"`
	TrendingScore int       `json:"trendingScore"`
}

// Author is the populated author reference of an article
type Author struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ArticleInput is the accepted shape of create and update bodies. Fields not
// listed here are ignored.
type ArticleInput struct {
	Title         string     `json:"title" validate:"required,max=300"`
	Content       string     `json:"content" validate:"required"`
	Excerpt       string     `json:"excerpt" validate:"required,max=1000"`
	Category      string     `json:"category" validate:"max=100"`
	FeaturedImage string     `json:"featuredImage" validate:"omitempty,url"`
	IsFeatured    bool       `json:"isFeatured"`
	Author        AuthorRef  `json:"author"`
	PublishDate   *time.Time `json:"publishDate"`
}

// InputFromArticle returns the input that would reproduce a's editable fields
func InputFromArticle(a *Article) ArticleInput {
	publishDate := a.PublishDate
	return ArticleInput{
		Title:         a.Title,
		Content:       a.Content,
		Excerpt:       a.Excerpt,
		Category:      a.Category,
		FeaturedImage: a.FeaturedImage,
		IsFeatured:    a.IsFeatured,
		Author:        AuthorRef(a.AuthorID),
		PublishDate:   &publishDate,
	}
}

// AuthorRef is an author id. It decodes from either a bare id string or a
// populated author object, so a fetched article can be sent back unchanged.
type AuthorRef string

// UnmarshalJSON implements json.Unmarshaler
func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = AuthorRef(id)
		return nil
	case len(data) > 0 && data[0] == '{':
		var author struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &author); err != nil {
			return err
		}
		*r = AuthorRef(author.ID)
		return nil
	default:
		return fmt.Errorf("author must be an id or an object, got %s", data)
	}
}
