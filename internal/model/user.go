package model

import "time"

type EmailNotificationSetting string

const (
	EmailNotificationImmediate EmailNotificationSetting = "IMMEDIATE"
	EmailNotificationOff       EmailNotificationSetting = "OFF"
)

type User struct {
	ID                uint64                   `gorm:"primaryKey" json:"id"`
	Handle            string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_handle" json:"handle"`
	Name              string                   `gorm:"type:varchar(100)" json:"name"`
	Email             string                   `gorm:"type:varchar(255);uniqueIndex:idx_email" json:"email"`
	EmailNotification EmailNotificationSetting `gorm:"type:varchar(20);not null;default:IMMEDIATE" json:"emailNotification"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`

	Languages []UserLanguage `gorm:"foreignKey:UserID;references:ID" json:"languages,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Identifier 展示名，未设置昵称时退回 handle
func (u *User) Identifier() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Handle
}

// WantsEmail 是否接收即时邮件
func (u *User) WantsEmail() bool {
	return u.Email != "" && u.EmailNotification != EmailNotificationOff
}

type UserLanguage struct {
	UserID     uint64        `gorm:"primaryKey" json:"userId"`
	LanguageID uint64        `gorm:"primaryKey" json:"languageId"`
	Level      LanguageLevel `gorm:"type:varchar(20);not null" json:"level"`
}

func (UserLanguage) TableName() string {
	return "user_languages"
}
