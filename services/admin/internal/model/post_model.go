package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPostModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Content          string    `gorm:"type:text" json:"content"`
	Excerpt          string    `gorm:"type:varchar(500)" json:"excerpt"`
	Type             string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Author           string    `gorm:"type:varchar(255)" json:"author"`
	FeaturedImageURL string    `gorm:"type:varchar(500)" json:"featured_image_url"`
	MediaURL         string    `gorm:"type:varchar(500)" json:"media_url"`
	Archived         bool      `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (BlogPostModel) TableName() string {
	return "posts"
}

func (p *BlogPostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type LegalBlogPostModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	Excerpt          string    `gorm:"type:varchar(500)" json:"excerpt"`
	Category         string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Author           string    `gorm:"type:varchar(255)" json:"author"`
	FeaturedImageURL string    `gorm:"type:varchar(500)" json:"featured_image_url"`
	Archived         bool      `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (LegalBlogPostModel) TableName() string {
	return "legal_posts"
}

func (p *LegalBlogPostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
