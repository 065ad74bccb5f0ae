package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrThreadHasComments 讨论下仍有评论，不能删除
var ErrThreadHasComments = errors.New("thread still has comments")

// firstOrNil 未找到时返回 nil, nil
func firstOrNil[T any](q *gorm.DB) (*T, error) {
	var v T
	err := q.First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

var doNothing = clause.OnConflict{DoNothing: true}
