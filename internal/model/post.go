package model

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

type Post struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	AuthorID      uint64     `gorm:"not null;index:idx_author_id" json:"authorId"`
	LanguageID    uint64     `gorm:"not null" json:"languageId"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	HeadlineImage string     `gorm:"type:varchar(255)" json:"headlineImage"`
	Status        PostStatus `gorm:"type:varchar(20);not null;default:DRAFT" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
}

func (Post) TableName() string {
	return "posts"
}

type PostClap struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_clap_author_post,priority:2" json:"postId"`
	AuthorID  uint64    `gorm:"not null;uniqueIndex:idx_clap_author_post,priority:1" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`

	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
	Post   Post `gorm:"foreignKey:PostID;references:ID" json:"post"`
}

func (PostClap) TableName() string {
	return "post_claps"
}
