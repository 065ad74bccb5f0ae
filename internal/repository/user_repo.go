package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	GetUserWithLanguages(ctx context.Context, userID uint64) (*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	return firstOrNil[model.User](s.db.WithContext(ctx).Where("id = ?", userID))
}

// GetUserWithLanguages 附带用户声明的语言水平
func (s *UserRepoImpl) GetUserWithLanguages(ctx context.Context, userID uint64) (*model.User, error) {
	return firstOrNil[model.User](s.db.WithContext(ctx).
		Preload("Languages").
		Where("id = ?", userID))
}
