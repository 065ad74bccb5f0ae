package model

// ThreadSubscription (user_id, thread_id) 唯一
type ThreadSubscription struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_user_thread,priority:1" json:"userId"`
	ThreadID uint64 `gorm:"not null;uniqueIndex:idx_user_thread,priority:2;index:idx_thread_id" json:"threadId"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (ThreadSubscription) TableName() string {
	return "thread_subscriptions"
}

// PostCommentSubscription (user_id, post_id) 唯一
type PostCommentSubscription struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex:idx_user_post,priority:1" json:"userId"`
	PostID uint64 `gorm:"not null;uniqueIndex:idx_user_post,priority:2;index:idx_post_id" json:"postId"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (PostCommentSubscription) TableName() string {
	return "post_comment_subscriptions"
}
