package service

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"Journaly/internal/pkg/util"
	"Journaly/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"gorm.io/gorm"
)

type ThreadService interface {
	CreateThread(ctx context.Context, userID uint64, req *dto.ThreadCreateDTO) (*dto.ThreadDTO, error)
	DeleteThread(ctx context.Context, userID uint64, threadID uint64) error
	GetThread(ctx context.Context, threadID uint64) (*dto.ThreadDTO, error)
}

type threadServiceImpl struct {
	threadRepo repository.ThreadRepo
	postRepo   repository.PostRepo
}

func NewThreadService(threadRepo repository.ThreadRepo, postRepo repository.PostRepo) ThreadService {
	return &threadServiceImpl{
		threadRepo: threadRepo,
		postRepo:   postRepo,
	}
}

// CreateThread 帖子作者和讨论发起人都会被订阅
func (s *threadServiceImpl) CreateThread(ctx context.Context, userID uint64, req *dto.ThreadCreateDTO) (*dto.ThreadDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if req == nil {
		return nil, ErrParamInvalid
	}
	if err := util.ValidateDTO(req); err != nil {
		log.WarnContext(ctx, "thread param invalid", "err", err)
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	thread := &model.Thread{
		PostID:             post.ID,
		StartIndex:         req.StartIndex,
		EndIndex:           req.EndIndex,
		HighlightedContent: req.HighlightedContent,
	}
	subscribers := []uint64{post.AuthorID}
	if userID != post.AuthorID {
		subscribers = append(subscribers, userID)
	}
	if err := s.threadRepo.CreateThread(ctx, thread, subscribers); err != nil {
		return nil, err
	}
	return toThreadDTO(thread), nil
}

// DeleteThread 只能删除没有评论的讨论
func (s *threadServiceImpl) DeleteThread(ctx context.Context, userID uint64, threadID uint64) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	thread, err := s.threadRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return err
	}
	if thread == nil {
		return ErrThreadNotFound
	}

	err = s.threadRepo.DeleteThread(ctx, threadID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrThreadHasComments):
		return ErrThreadNotEmpty
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrThreadNotFound
	default:
		return err
	}
}

func (s *threadServiceImpl) GetThread(ctx context.Context, threadID uint64) (*dto.ThreadDTO, error) {
	thread, err := s.threadRepo.GetThreadWithComments(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	return toThreadDTO(thread), nil
}
