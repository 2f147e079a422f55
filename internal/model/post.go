package model

import "time"

// Post is the content unit of the site. CommunityID and Image are both
// optional; AuthorID and CreatedAt are fixed at creation and never updated.
type Post struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Text        string    `gorm:"type:text;not null"`
	AuthorID    string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	CommunityID *string   `gorm:"type:varchar(36);index:idx_post_community"`
	Image       *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"index:idx_post_created"`
	UpdatedAt   time.Time

	Author    *User      `gorm:"foreignKey:AuthorID"`
	Community *Community `gorm:"foreignKey:CommunityID"`
}

func (Post) TableName() string { return "posts" }
