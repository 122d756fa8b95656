package entity

import (
	"errors"
	"strings"
	"time"
)

type PostType string

const (
	PostTypeArticulo PostType = "articulo"
	PostTypeVideo    PostType = "video"
	PostTypeAudio    PostType = "audio"
)

func (t PostType) Valid() bool {
	switch t {
	case PostTypeArticulo, PostTypeVideo, PostTypeAudio:
		return true
	}
	return false
}

type BlogPost struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	Type             PostType  `json:"type"`
	Author           string    `json:"author"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	MediaURL         string    `json:"mediaUrl"`
	Archived         bool      `json:"archived"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (p *BlogPost) RecordID() string       { return p.ID }
func (p *BlogPost) IsArchived() bool       { return p.Archived }
func (p *BlogPost) Created() time.Time     { return p.CreatedAt }
func (p *BlogPost) Kind() string           { return string(p.Type) }
func (p *BlogPost) SearchFields() []string { return []string{p.Title, p.Content} }

func (p *BlogPost) MediaURLs() []string {
	return nonEmpty(p.FeaturedImageURL, p.MediaURL)
}

// ClearTimestamps zeroes the server-owned timestamps so the store assigns them.
func (p *BlogPost) ClearTimestamps() {
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
}

func (p *BlogPost) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("el título es obligatorio")
	}
	if !p.Type.Valid() {
		return errors.New("tipo de publicación inválido")
	}
	if (p.Type == PostTypeVideo || p.Type == PostTypeAudio) && p.MediaURL == "" {
		return errors.New("las publicaciones de video o audio requieren un archivo multimedia")
	}
	return nil
}

// BlogPostPatch is a partial update: nil fields are left untouched.
type BlogPostPatch struct {
	Title            *string   `json:"title"`
	Content          *string   `json:"content"`
	Excerpt          *string   `json:"excerpt"`
	Type             *PostType `json:"type"`
	Author           *string   `json:"author"`
	FeaturedImageURL *string   `json:"featuredImageUrl"`
	MediaURL         *string   `json:"mediaUrl"`
	Archived         *bool     `json:"archived"`
}

func (p BlogPostPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("el título no puede quedar vacío")
	}
	if p.Type != nil && !p.Type.Valid() {
		return errors.New("tipo de publicación inválido")
	}
	return nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
