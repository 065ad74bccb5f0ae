package model

import "time"

type NotificationType string

const (
	NotificationThreadComment       NotificationType = "THREAD_COMMENT"
	NotificationPostComment         NotificationType = "POST_COMMENT"
	NotificationPostClap            NotificationType = "POST_CLAP"
	NotificationThreadCommentThanks NotificationType = "THREAD_COMMENT_THANKS"
	NotificationNewPost             NotificationType = "NEW_POST"
	NotificationNewFollower         NotificationType = "NEW_FOLLOWER"
)

type NotificationReadStatus string

const (
	ReadStatusUnread NotificationReadStatus = "UNREAD"
	ReadStatusRead   NotificationReadStatus = "READ"
)

// InAppNotification 站内通知父记录，同一 (类型, key) 下的未读事件挂在同一条上
type InAppNotification struct {
	ID               uint64                 `gorm:"primaryKey" json:"id"`
	UserID           uint64                 `gorm:"not null;index:idx_user_status,priority:1" json:"userId"`
	Type             NotificationType       `gorm:"type:varchar(40);not null" json:"type"`
	ReadStatus       NotificationReadStatus `gorm:"type:varchar(10);not null;default:UNREAD;index:idx_user_status,priority:2" json:"readStatus"`
	PostID           *uint64                `gorm:"index:idx_post_id" json:"postId"`
	TriggeringUserID *uint64                `json:"triggeringUserId"`
	BumpedAt         time.Time              `gorm:"not null;index:idx_bumped_at" json:"bumpedAt"`
	CreatedAt        time.Time              `json:"createdAt"`

	Post           *Post `gorm:"foreignKey:PostID;references:ID" json:"-"`
	TriggeringUser *User `gorm:"foreignKey:TriggeringUserID;references:ID" json:"-"`

	ThreadComments      []ThreadCommentNotification       `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
	PostComments        []PostCommentNotification         `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
	ThreadCommentThanks []ThreadCommentThanksNotification `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
	PostClaps           []PostClapNotification            `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
	NewPosts            []NewPostNotification             `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
	NewFollowers        []NewFollowerNotification         `gorm:"foreignKey:NotificationID;references:ID" json:"-"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

// SubNotification 挂在父通知下的单条事件
type SubNotification interface {
	SetNotificationID(id uint64)
}

type ThreadCommentNotification struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index:idx_notification_id"`
	CommentID      uint64 `gorm:"not null;index:idx_comment_id"`
	CreatedAt      time.Time
	Comment        *Comment `gorm:"foreignKey:CommentID;references:ID"`
}

func (ThreadCommentNotification) TableName() string { return "thread_comment_notifications" }

func (n *ThreadCommentNotification) SetNotificationID(id uint64) { n.NotificationID = id }

type PostCommentNotification struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index:idx_notification_id"`
	PostCommentID  uint64 `gorm:"not null;index:idx_post_comment_id"`
	CreatedAt      time.Time
	PostComment    *PostComment `gorm:"foreignKey:PostCommentID;references:ID"`
}

func (PostCommentNotification) TableName() string { return "post_comment_notifications" }

func (n *PostCommentNotification) SetNotificationID(id uint64) { n.NotificationID = id }

type ThreadCommentThanksNotification struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index:idx_notification_id"`
	ThanksID       uint64 `gorm:"not null;index:idx_thanks_id"`
	CreatedAt      time.Time
	Thanks         *CommentThanks `gorm:"foreignKey:ThanksID;references:ID"`
}

func (ThreadCommentThanksNotification) TableName() string {
	return "thread_comment_thanks_notifications"
}

func (n *ThreadCommentThanksNotification) SetNotificationID(id uint64) { n.NotificationID = id }

type PostClapNotification struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index:idx_notification_id"`
	PostClapID     uint64 `gorm:"not null"`
	CreatedAt      time.Time
	PostClap       *PostClap `gorm:"foreignKey:PostClapID;references:ID"`
}

func (PostClapNotification) TableName() string { return "post_clap_notifications" }

func (n *PostClapNotification) SetNotificationID(id uint64) { n.NotificationID = id }

type NewPostNotification struct {
	ID             uint64 `gorm:"primaryKey"`
	NotificationID uint64 `gorm:"not null;index:idx_notification_id"`
	PostID         uint64 `gorm:"not null"`
	CreatedAt      time.Time
	Post           *Post `gorm:"foreignKey:PostID;references:ID"`
}

func (NewPostNotification) TableName() string { return "new_post_notifications" }

func (n *NewPostNotification) SetNotificationID(id uint64) { n.NotificationID = id }

// NewFollowerNotification FollowingUserID 为发起关注的用户
type NewFollowerNotification struct {
	ID              uint64 `gorm:"primaryKey"`
	NotificationID  uint64 `gorm:"not null;index:idx_notification_id"`
	FollowingUserID uint64 `gorm:"not null"`
	CreatedAt       time.Time
	FollowingUser   *User `gorm:"foreignKey:FollowingUserID;references:ID"`
}

func (NewFollowerNotification) TableName() string { return "new_follower_notifications" }

func (n *NewFollowerNotification) SetNotificationID(id uint64) { n.NotificationID = id }

// AllModels AutoMigrate 使用
func AllModels() []any {
	return []any{
		&User{}, &UserLanguage{}, &Post{}, &PostClap{}, &Thread{}, &Comment{}, &CommentThanks{},
		&PostComment{}, &UserFollow{}, &ThreadSubscription{}, &PostCommentSubscription{}, &UserBadge{},
		&InAppNotification{}, &ThreadCommentNotification{}, &PostCommentNotification{},
		&ThreadCommentThanksNotification{}, &PostClapNotification{}, &NewPostNotification{},
		&NewFollowerNotification{},
	}
}
