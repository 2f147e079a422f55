package model

import "time"

// Community is a named collection posts may optionally belong to. Slug is
// the URL identifier and must be globally unique.
type Community struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex:ux_community_slug;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Community) TableName() string { return "communities" }
