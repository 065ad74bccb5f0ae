package repository

import (
	"Journaly/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type BadgeRepo interface {
	AssignBadge(ctx context.Context, userID uint64, badge model.BadgeType) error
}

type BadgeRepoImpl struct {
	db *gorm.DB
}

func NewBadgeRepo(db *gorm.DB) BadgeRepo {
	return &BadgeRepoImpl{db: db}
}

// AssignBadge 幂等，已拥有时忽略
func (s *BadgeRepoImpl) AssignBadge(ctx context.Context, userID uint64, badge model.BadgeType) error {
	return s.db.WithContext(ctx).
		Clauses(doNothing).
		Create(&model.UserBadge{UserID: userID, Type: badge, CreatedAt: time.Now()}).Error
}
