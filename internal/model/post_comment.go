package model

import (
	"time"
)

// PostComment 帖子级评论
type PostComment struct {
	ID                  uint64        `gorm:"primaryKey" json:"id"`
	PostID              uint64        `gorm:"not null;index:idx_post_id" json:"postId"`
	AuthorID            uint64        `gorm:"not null;index:idx_author_id" json:"authorId"`
	Body                string        `gorm:"type:text;not null" json:"body"`
	AuthorLanguageLevel LanguageLevel `gorm:"type:varchar(20);not null;default:BEGINNER" json:"authorLanguageLevel"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`

	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
	Post   Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
