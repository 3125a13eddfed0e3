package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is an advisory post. Title is a natural key: posting an article
// whose title already exists updates that article instead of duplicating it.
type Article struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Slug      string    `gorm:"size:255;index" json:"slug"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Link      string    `gorm:"type:text" json:"link,omitempty"`
	Image     string    `gorm:"type:text" json:"image,omitempty"`
	Video     string    `gorm:"type:text" json:"video,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
