package model

import "time"

// Comment 划线讨论下的评论
type Comment struct {
	ID                  uint64        `gorm:"primaryKey" json:"id"`
	ThreadID            uint64        `gorm:"not null;index:idx_thread_id" json:"threadId"`
	AuthorID            uint64        `gorm:"not null;index:idx_author_id" json:"authorId"`
	Body                string        `gorm:"type:text;not null" json:"body"`
	AuthorLanguageLevel LanguageLevel `gorm:"type:varchar(20);not null;default:BEGINNER" json:"authorLanguageLevel"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`

	Author User            `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
	Thread Thread          `gorm:"foreignKey:ThreadID;references:ID" json:"-"`
	Thanks []CommentThanks `gorm:"foreignKey:CommentID;references:ID" json:"thanks,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type CommentThanks struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CommentID uint64    `gorm:"not null;uniqueIndex:idx_thanks_author_comment,priority:2" json:"commentId"`
	AuthorID  uint64    `gorm:"not null;uniqueIndex:idx_thanks_author_comment,priority:1" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`

	Author  User    `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
	Comment Comment `gorm:"foreignKey:CommentID;references:ID" json:"-"`
}

func (CommentThanks) TableName() string {
	return "comment_thanks"
}
