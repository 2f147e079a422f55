package model

import "time"

// Comment belongs to one post and one author.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Text      string    `gorm:"type:text;not null"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_comment_author;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string { return "comments" }
