package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrAuthRequired         = errors.New("请先登录")
	ErrPermissionDenied     = errors.New("权限不足")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrThreadNotFound       = errors.New("讨论不存在")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrPostCommentNotFound  = errors.New("帖子评论不存在")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrFollowNotFound       = errors.New("关注关系不存在")
	ErrThreadNotEmpty       = errors.New("讨论下仍有评论，无法删除")
	ErrThankOwnComment      = errors.New("不能感谢自己的评论")
	ErrActionDuplicate      = errors.New("重复操作")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrAuthRequired:         Unauthorized,
	ErrPermissionDenied:     Forbidden,
	ErrUserNotFound:         NotFound,
	ErrPostNotFound:         NotFound,
	ErrThreadNotFound:       NotFound,
	ErrCommentNotFound:      NotFound,
	ErrPostCommentNotFound:  NotFound,
	ErrNotificationNotFound: NotFound,
	ErrFollowNotFound:       NotFound,
	ErrThreadNotEmpty:       Conflict,
	ErrThankOwnComment:      BadRequest,
	ErrActionDuplicate:      BadRequest,
	UnExpectedError:         InternalServerError,
}
