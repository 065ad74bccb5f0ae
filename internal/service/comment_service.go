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

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID uint64, commentID uint64, body string) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID uint64, commentID uint64) error
	ThankComment(ctx context.Context, userID uint64, commentID uint64) error
}

type commentServiceImpl struct {
	commentRepo      repository.CommentRepo
	threadRepo       repository.ThreadRepo
	userRepo         repository.UserRepo
	subscriptionRepo repository.SubscriptionRepo
	badgeRepo        repository.BadgeRepo
	notification     NotificationService
	now              func() time.Time
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	threadRepo repository.ThreadRepo,
	userRepo repository.UserRepo,
	subscriptionRepo repository.SubscriptionRepo,
	badgeRepo repository.BadgeRepo,
	notification NotificationService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:      commentRepo,
		threadRepo:       threadRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		badgeRepo:        badgeRepo,
		notification:     notification,
		now:              time.Now,
	}
}

// CreateComment 订阅者在评论者被订阅之前读取，评论者自己不会收到通知
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if req == nil || strings.TrimSpace(req.Body) == "" {
		return nil, ErrParamInvalid
	}

	thread, err := s.threadRepo.GetThreadByID(ctx, req.ThreadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	author, err := s.userRepo.GetUserWithLanguages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	subscribers, err := s.subscriptionRepo.GetThreadSubscribers(ctx, thread.ID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ThreadID:            thread.ID,
		AuthorID:            userID,
		Body:                req.Body,
		AuthorLanguageLevel: author.LevelFor(thread.Post.LanguageID),
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *author

	report := s.notification.NotifyThreadComment(ctx, thread, comment, subscribers)
	if failed := report.Failed(); len(failed) > 0 {
		log.WarnContext(ctx, "thread comment delivery partially failed",
			"comment_id", comment.ID, "failed", len(failed), "delivered", len(report.Delivered()))
	}

	s.awardNecromancer(ctx, thread, userID)
	return toCommentDTO(comment), nil
}

// awardNecromancer 给久未活跃帖子下的评论者发徽章，失败只记录日志
func (s *commentServiceImpl) awardNecromancer(ctx context.Context, thread *model.Thread, userID uint64) {
	post := thread.Post
	if post.ID == 0 || post.AuthorID == userID {
		return
	}
	if s.now().Sub(post.CreatedAt) <= necromancerAge {
		return
	}
	if err := s.badgeRepo.AssignBadge(ctx, userID, model.BadgeNecromancer); err != nil {
		log.ErrorContext(ctx, "assign badge error", "user_id", userID, "badge", model.BadgeNecromancer, "err", err)
	}
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, userID uint64, commentID uint64, body string) (*dto.CommentDTO, error) {
	comment, err := s.ownComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrParamInvalid
	}
	if err := s.commentRepo.UpdateCommentBody(ctx, commentID, body); err != nil {
		return nil, err
	}
	comment.Body = body
	comment.UpdatedAt = s.now()
	return toCommentDTO(comment), nil
}

// DeleteComment 已发出的通知不撤回
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID uint64, commentID uint64) error {
	if _, err := s.ownComment(ctx, userID, commentID); err != nil {
		return err
	}
	return s.commentRepo.DeleteComment(ctx, commentID)
}

func (s *commentServiceImpl) ownComment(ctx context.Context, userID uint64, commentID uint64) (*model.Comment, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrPermissionDenied
	}
	return comment, nil
}

// ThankComment 感谢评论并通知评论作者
func (s *commentServiceImpl) ThankComment(ctx context.Context, userID uint64, commentID uint64) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID == userID {
		return ErrThankOwnComment
	}

	thanks := &model.CommentThanks{CommentID: commentID, AuthorID: userID}
	if err := s.commentRepo.CreateThanks(ctx, thanks); err != nil {
		if isDuplicateError(err) {
			return ErrActionDuplicate
		}
		return err
	}

	report, err := s.notification.NotifyCommentThanks(ctx, thanks.ID)
	if err != nil {
		log.ErrorContext(ctx, "notify comment thanks error", "thanks_id", thanks.ID, "err", err)
		return nil
	}
	if failed := report.Failed(); len(failed) > 0 {
		log.WarnContext(ctx, "thanks delivery failed", "thanks_id", thanks.ID, "failed", len(failed))
	}
	return nil
}
