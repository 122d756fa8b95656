package entity

import (
	"errors"
	"strings"
	"time"
)

type LegalCategory string

const (
	LegalCivil          LegalCategory = "civil"
	LegalPenal          LegalCategory = "penal"
	LegalLaboral        LegalCategory = "laboral"
	LegalMercantil      LegalCategory = "mercantil"
	LegalFamiliar       LegalCategory = "familiar"
	LegalAdministrativo LegalCategory = "administrativo"
)

func (c LegalCategory) Valid() bool {
	switch c {
	case LegalCivil, LegalPenal, LegalLaboral, LegalMercantil, LegalFamiliar, LegalAdministrativo:
		return true
	}
	return false
}

// LegalBlogPost is an article of the legal practice blog.
type LegalBlogPost struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Content          string        `json:"content"`
	Excerpt          string        `json:"excerpt"`
	Category         LegalCategory `json:"category"`
	Author           string        `json:"author"`
	FeaturedImageURL string        `json:"featuredImageUrl"`
	Archived         bool          `json:"archived"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (p *LegalBlogPost) RecordID() string       { return p.ID }
func (p *LegalBlogPost) IsArchived() bool       { return p.Archived }
func (p *LegalBlogPost) Created() time.Time     { return p.CreatedAt }
func (p *LegalBlogPost) Kind() string           { return string(p.Category) }
func (p *LegalBlogPost) SearchFields() []string { return []string{p.Title, p.Content} }
func (p *LegalBlogPost) MediaURLs() []string    { return nonEmpty(p.FeaturedImageURL) }

// ClearTimestamps zeroes the server-owned timestamps so the store assigns them.
func (p *LegalBlogPost) ClearTimestamps() {
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
}

func (p *LegalBlogPost) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("el título es obligatorio")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("el contenido es obligatorio")
	}
	if !p.Category.Valid() {
		return errors.New("categoría legal inválida")
	}
	return nil
}

type LegalBlogPostPatch struct {
	Title            *string        `json:"title"`
	Content          *string        `json:"content"`
	Excerpt          *string        `json:"excerpt"`
	Category         *LegalCategory `json:"category"`
	Author           *string        `json:"author"`
	FeaturedImageURL *string        `json:"featuredImageUrl"`
	Archived         *bool          `json:"archived"`
}

func (p LegalBlogPostPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("el título no puede quedar vacío")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return errors.New("el contenido no puede quedar vacío")
	}
	if p.Category != nil && !p.Category.Valid() {
		return errors.New("categoría legal inválida")
	}
	return nil
}
