package service

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"Journaly/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

type PostCommentService interface {
	CreatePostComment(ctx context.Context, userID uint64, req *dto.PostCommentCreateDTO) (*dto.PostCommentDTO, error)
	UpdatePostComment(ctx context.Context, userID uint64, id uint64, body string) (*dto.PostCommentDTO, error)
	DeletePostComment(ctx context.Context, userID uint64, id uint64) error
}

type postCommentServiceImpl struct {
	postCommentRepo  repository.PostCommentRepo
	postRepo         repository.PostRepo
	userRepo         repository.UserRepo
	subscriptionRepo repository.SubscriptionRepo
	notification     NotificationService
	now              func() time.Time
}

func NewPostCommentService(
	postCommentRepo repository.PostCommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	subscriptionRepo repository.SubscriptionRepo,
	notification NotificationService,
) PostCommentService {
	return &postCommentServiceImpl{
		postCommentRepo:  postCommentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		notification:     notification,
		now:              time.Now,
	}
}

func (s *postCommentServiceImpl) CreatePostComment(ctx context.Context, userID uint64, req *dto.PostCommentCreateDTO) (*dto.PostCommentDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if req == nil || strings.TrimSpace(req.Body) == "" {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	author, err := s.userRepo.GetUserWithLanguages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	subscribers, err := s.subscriptionRepo.GetPostCommentSubscribers(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	pc := &model.PostComment{
		PostID:              post.ID,
		AuthorID:            userID,
		Body:                req.Body,
		AuthorLanguageLevel: author.LevelFor(post.LanguageID),
	}
	if err := s.postCommentRepo.CreatePostComment(ctx, pc); err != nil {
		return nil, err
	}
	pc.Author = *author

	report := s.notification.NotifyPostComment(ctx, post, pc, subscribers)
	if failed := report.Failed(); len(failed) > 0 {
		log.WarnContext(ctx, "post comment delivery partially failed",
			"post_comment_id", pc.ID, "failed", len(failed), "delivered", len(report.Delivered()))
	}
	return toPostCommentDTO(pc), nil
}

func (s *postCommentServiceImpl) UpdatePostComment(ctx context.Context, userID uint64, id uint64, body string) (*dto.PostCommentDTO, error) {
	pc, err := s.ownPostComment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrParamInvalid
	}
	if err := s.postCommentRepo.UpdatePostCommentBody(ctx, id, body); err != nil {
		return nil, err
	}
	pc.Body = body
	pc.UpdatedAt = s.now()
	return toPostCommentDTO(pc), nil
}

func (s *postCommentServiceImpl) DeletePostComment(ctx context.Context, userID uint64, id uint64) error {
	if _, err := s.ownPostComment(ctx, userID, id); err != nil {
		return err
	}
	return s.postCommentRepo.DeletePostComment(ctx, id)
}

func (s *postCommentServiceImpl) ownPostComment(ctx context.Context, userID uint64, id uint64) (*model.PostComment, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	pc, err := s.postCommentRepo.GetPostCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, ErrPostCommentNotFound
	}
	if pc.AuthorID != userID {
		return nil, ErrPermissionDenied
	}
	return pc, nil
}
