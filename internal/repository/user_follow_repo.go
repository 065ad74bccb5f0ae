package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	GetFollowers(ctx context.Context, userID uint64) ([]*model.User, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// GetFollowers 获取用户的全部粉丝
func (s *UserFollowRepoImpl) GetFollowers(ctx context.Context, userID uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.following_id = ?", userID).
		Order("user_follows.created_at ASC").
		Find(&users).Error
	return users, err
}

func (s *UserFollowRepoImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}
