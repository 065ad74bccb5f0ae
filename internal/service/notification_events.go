package service

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/feed"
	"Journaly/internal/pkg/mail"
	"Journaly/internal/pkg/notify"
	"context"
)

// NotifyThreadComment 通知讨论订阅者，subscribers 应在评论者被订阅之前读取
func (s *notificationServiceImpl) NotifyThreadComment(ctx context.Context, thread *model.Thread, comment *model.Comment, subscribers []*model.User) *notify.Report {
	postID := thread.PostID
	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationThreadComment,
		ActorID:    comment.AuthorID,
		Recipients: subscribers,
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				Email: &mail.Job{
					Kind: mail.KindThreadComment,
					Data: map[string]string{
						mail.DataActor:     comment.Author.Identifier(),
						mail.DataPostTitle: thread.Post.Title,
						mail.DataBody:      comment.Body,
						mail.DataLink:      feed.ThreadLink(postID, thread.ID),
					},
				},
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationThreadComment, PostID: &postID},
					Sub:          &model.ThreadCommentNotification{CommentID: comment.ID},
				},
			}
		},
	})
}

func (s *notificationServiceImpl) NotifyPostComment(ctx context.Context, post *model.Post, pc *model.PostComment, subscribers []*model.User) *notify.Report {
	postID := post.ID
	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationPostComment,
		ActorID:    pc.AuthorID,
		Recipients: subscribers,
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				Email: &mail.Job{
					Kind: mail.KindPostComment,
					Data: map[string]string{
						mail.DataActor:     pc.Author.Identifier(),
						mail.DataPostTitle: post.Title,
						mail.DataBody:      pc.Body,
						mail.DataLink:      feed.PostCommentLink(postID, pc.ID),
					},
				},
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationPostComment, PostID: &postID},
					Sub:          &model.PostCommentNotification{PostCommentID: pc.ID},
				},
			}
		},
	})
}

// NotifyCommentThanks 通知被感谢的评论作者
func (s *notificationServiceImpl) NotifyCommentThanks(ctx context.Context, thanksID uint64) (*notify.Report, error) {
	thanks, err := s.commentRepo.GetThanksByID(ctx, thanksID)
	if err != nil {
		return nil, err
	}
	if thanks == nil || thanks.Comment.ID == 0 {
		return nil, ErrCommentNotFound
	}

	comment := &thanks.Comment
	postID := comment.Thread.PostID
	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationThreadCommentThanks,
		ActorID:    thanks.AuthorID,
		Recipients: []*model.User{&comment.Author},
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				Email: &mail.Job{
					Kind: mail.KindThreadCommentThanks,
					Data: map[string]string{
						mail.DataActor:     thanks.Author.Identifier(),
						mail.DataPostTitle: comment.Thread.Post.Title,
						mail.DataBody:      comment.Body,
						mail.DataLink:      feed.ThreadLink(postID, comment.ThreadID),
					},
				},
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationThreadCommentThanks, PostID: &postID},
					Sub:          &model.ThreadCommentThanksNotification{ThanksID: thanks.ID},
				},
			}
		},
	}), nil
}

// NotifyPostClap 只发站内通知
func (s *notificationServiceImpl) NotifyPostClap(ctx context.Context, clapID uint64) (*notify.Report, error) {
	clap, err := s.postRepo.GetPostClapByID(ctx, clapID)
	if err != nil {
		return nil, err
	}
	if clap == nil || clap.Post.ID == 0 {
		return nil, ErrPostNotFound
	}

	postID := clap.PostID
	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationPostClap,
		ActorID:    clap.AuthorID,
		Recipients: []*model.User{&clap.Post.Author},
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationPostClap, PostID: &postID},
					Sub:          &model.PostClapNotification{PostClapID: clap.ID},
				},
			}
		},
	}), nil
}

// NotifyNewPost 通知作者的全部粉丝，并让作者订阅自己帖子的评论
func (s *notificationServiceImpl) NotifyNewPost(ctx context.Context, postID uint64) (*notify.Report, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := s.subscriptionRepo.UpsertPostCommentSubscription(ctx, post.AuthorID, post.ID); err != nil {
		return nil, err
	}

	followers, err := s.followRepo.GetFollowers(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	authorID := post.AuthorID
	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationNewPost,
		ActorID:    authorID,
		Recipients: followers,
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationNewPost, TriggeringUserID: &authorID},
					Sub:          &model.NewPostNotification{PostID: post.ID},
				},
			}
		},
	}), nil
}

// NotifyNewFollower followerID 关注了 followingID
func (s *notificationServiceImpl) NotifyNewFollower(ctx context.Context, followerID, followingID uint64) (*notify.Report, error) {
	follower, err := s.userRepo.GetUserByID(ctx, followerID)
	if err != nil {
		return nil, err
	}
	following, err := s.userRepo.GetUserByID(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if follower == nil || following == nil {
		return nil, ErrUserNotFound
	}
	// binlog 重放时关注可能已取消
	stillFollowing, err := s.followRepo.IsFollowing(ctx, follower.ID, following.ID)
	if err != nil {
		return nil, err
	}
	if !stillFollowing {
		return nil, ErrFollowNotFound
	}

	return s.dispatcher.Dispatch(ctx, notify.Event{
		Type:       model.NotificationNewFollower,
		ActorID:    follower.ID,
		Recipients: []*model.User{following},
		Build: func(*model.User) notify.Delivery {
			return notify.Delivery{
				Email: &mail.Job{
					Kind: mail.KindNewFollower,
					Data: map[string]string{
						mail.DataActor: follower.Identifier(),
						mail.DataLink:  feed.UserLink(follower.ID),
					},
				},
				InApp: &notify.InApp{
					Notification: &model.InAppNotification{Type: model.NotificationNewFollower},
					Sub:          &model.NewFollowerNotification{FollowingUserID: follower.ID},
				},
			}
		},
	}), nil
}
