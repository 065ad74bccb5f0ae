package model

import "time"

type BadgeType string

const (
	BadgeNecromancer BadgeType = "NECROMANCER"
)

type UserBadge struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_badge,priority:1" json:"userId"`
	Type      BadgeType `gorm:"type:varchar(40);not null;uniqueIndex:idx_user_badge,priority:2" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
