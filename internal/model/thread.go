package model

import "time"

type Thread struct {
	ID                 uint64    `gorm:"primaryKey" json:"id"`
	PostID             uint64    `gorm:"not null;index:idx_post_id" json:"postId"`
	StartIndex         int       `gorm:"not null" json:"startIndex"`
	EndIndex           int       `gorm:"not null" json:"endIndex"`
	HighlightedContent string    `gorm:"type:text;not null" json:"highlightedContent"`
	Archived           bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Post     Post      `gorm:"foreignKey:PostID;references:ID" json:"post"`
	Comments []Comment `gorm:"foreignKey:ThreadID;references:ID" json:"comments,omitempty"`
}

func (Thread) TableName() string {
	return "threads"
}
