package service

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 场景：A 在 B 的帖子上发起讨论，C 评论
func seedDiscussion(t *testing.T, h *harness, postAge time.Duration) *dto.ThreadDTO {
	t.Helper()
	h.store.addUser(1, "ana")
	h.store.addUser(2, "ben")
	h.store.addUser(3, "carla", model.UserLanguage{UserID: 3, LanguageID: 1, Level: model.LanguageLevelAdvanced})
	h.store.addPost(10, 2, time.Now().Add(-postAge))

	thread, err := h.threads.CreateThread(context.Background(), 1, highlight(10))
	require.NoError(t, err)
	return thread
}

func TestCreateComment_NotifiesSubscribersOnceExceptActor(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	comment, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "Se dice 'fui'"})
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2}, h.queue.recipients())
	for _, uid := range []uint64{1, 2} {
		inbox := h.inbox(uid)
		require.Len(t, inbox, 1)
		assert.Equal(t, model.NotificationThreadComment, inbox[0].Type)
		assert.Len(t, inbox[0].ThreadComments, 1)
		require.NotNil(t, inbox[0].PostID)
		assert.Equal(t, uint64(10), *inbox[0].PostID)
	}
	assert.Empty(t, h.inbox(3))

	// 评论者此后成为订阅者
	subs, _ := h.store.GetThreadSubscribers(ctx, thread.ID)
	assert.Len(t, subs, 3)

	// 删除评论不撤回通知
	require.NoError(t, h.comments.DeleteComment(ctx, 3, comment.ID))
	assert.Len(t, h.inbox(1), 1)
	assert.Len(t, h.inbox(2), 1)
}

func TestDeleteComment_FeedStaysConsistentWithUnreadCount(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	comment, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "Se dice 'fui'"})
	require.NoError(t, err)
	require.NoError(t, h.comments.DeleteComment(ctx, 3, comment.ID))

	items, err := h.notifications.ListNotifications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Count)
	assert.Equal(t, string(model.ReadStatusUnread), items[0].ReadStatus)

	unread, err := h.notifications.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(len(items)), unread.UnreadCount)

	detail, err := h.notifications.GetNotificationDetail(ctx, 2, []uint64{items[0].ID})
	require.NoError(t, err)
	assert.Empty(t, detail.Threads)
}

func TestCreateComment_EmailContent(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)

	_, err := h.comments.CreateComment(context.Background(), 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "Se dice 'fui'"})
	require.NoError(t, err)

	require.NotEmpty(t, h.queue.jobs)
	job := h.queue.jobs[0]
	assert.Equal(t, "carla", job.Data["actor"])
	assert.Equal(t, "Mi día", job.Data["postTitle"])
	assert.Equal(t, "Se dice 'fui'", job.Data["body"])
	assert.Contains(t, job.Data["link"], "thread=")
	assert.Equal(t, uint64(3), job.ActorID)

	// 邮件链接与站内通知详情中的链接一致
	detail, err := h.notifications.GetNotificationDetail(context.Background(), job.UserID, []uint64{h.inbox(job.UserID)[0].ID})
	require.NoError(t, err)
	require.Len(t, detail.Threads, 1)
	assert.Equal(t, detail.Threads[0].Link, job.Data["link"])
	assert.Equal(t, detail.Threads[0].Comments[0].Link, job.Data["link"])
}

func TestCreateComment_EmailOffStillGetsInApp(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	h.store.users[2].EmailNotification = model.EmailNotificationOff

	_, err := h.comments.CreateComment(context.Background(), 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "hola"})
	require.NoError(t, err)

	assert.Equal(t, []uint64{1}, h.queue.recipients())
	assert.Len(t, h.inbox(2), 1)
}

func TestCreateComment_EmailQueueDownDoesNotFailMutation(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	h.queue.err = errors.New("broker unavailable")

	_, err := h.comments.CreateComment(context.Background(), 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "hola"})
	require.NoError(t, err)
	assert.Len(t, h.inbox(1), 1)
}

func TestCreateComment_SameBucketUntilRead(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	for _, body := range []string{"uno", "dos"} {
		_, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: body})
		require.NoError(t, err)
	}
	inbox := h.inbox(1)
	require.Len(t, inbox, 1)
	assert.Len(t, inbox[0].ThreadComments, 2)

	require.NoError(t, h.notifications.MarkRead(ctx, 1, []uint64{inbox[0].ID}))
	_, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "tres"})
	require.NoError(t, err)
	assert.Len(t, h.inbox(1), 2)
}

func TestCreateComment_LanguageLevel(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	declared, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	require.NoError(t, err)
	assert.Equal(t, string(model.LanguageLevelAdvanced), declared.AuthorLanguageLevel)

	baseline, err := h.comments.CreateComment(ctx, 1, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, string(model.LanguageLevelBeginner), baseline.AuthorLanguageLevel)
}

func TestCreateComment_Necromancer(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, 8*24*time.Hour)
	ctx := context.Background()

	_, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	require.NoError(t, err)
	_, err = h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, []model.BadgeType{model.BadgeNecromancer}, h.store.badges[3])

	// 帖子作者本人不获得徽章
	_, err = h.comments.CreateComment(ctx, 2, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "c"})
	require.NoError(t, err)
	assert.Empty(t, h.store.badges[2])
}

func TestCreateComment_FreshPostNoBadge(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, 2*24*time.Hour)

	_, err := h.comments.CreateComment(context.Background(), 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	require.NoError(t, err)
	assert.Empty(t, h.store.badges[3])
}

func TestCreateComment_Errors(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	_, err := h.comments.CreateComment(ctx, 0, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: 404, Body: "a"})
	assert.ErrorIs(t, err, ErrThreadNotFound)
	_, err = h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "  "})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdateAndDeleteComment_OnlyAuthor(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	comment, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	require.NoError(t, err)

	_, err = h.comments.UpdateComment(ctx, 1, comment.ID, "hack")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, h.comments.DeleteComment(ctx, 1, comment.ID), ErrPermissionDenied)

	updated, err := h.comments.UpdateComment(ctx, 3, comment.ID, "editado")
	require.NoError(t, err)
	assert.Equal(t, "editado", updated.Body)
	assert.Equal(t, "editado", h.store.comments[comment.ID].Body)

	require.NoError(t, h.comments.DeleteComment(ctx, 3, comment.ID))
	assert.ErrorIs(t, h.comments.DeleteComment(ctx, 3, comment.ID), ErrCommentNotFound)
	_, err = h.comments.UpdateComment(ctx, 0, comment.ID, "x")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestThankComment(t *testing.T) {
	h := newHarness()
	thread := seedDiscussion(t, h, time.Hour)
	ctx := context.Background()

	comment, err := h.comments.CreateComment(ctx, 3, &dto.CommentCreateDTO{ThreadID: thread.ID, Body: "a"})
	require.NoError(t, err)

	assert.ErrorIs(t, h.comments.ThankComment(ctx, 3, comment.ID), ErrThankOwnComment)
	require.NoError(t, h.comments.ThankComment(ctx, 1, comment.ID))
	assert.ErrorIs(t, h.comments.ThankComment(ctx, 1, comment.ID), ErrActionDuplicate)
	assert.ErrorIs(t, h.comments.ThankComment(ctx, 1, 404), ErrCommentNotFound)

	inbox := h.inbox(3)
	require.Len(t, inbox, 1)
	assert.Equal(t, model.NotificationThreadCommentThanks, inbox[0].Type)
	assert.Len(t, inbox[0].ThreadCommentThanks, 1)
	assert.Contains(t, h.queue.recipients(), uint64(3))
}
