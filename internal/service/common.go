package service

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

// necromancerAge 帖子发布超过该时长后的评论会获得 NECROMANCER 徽章
const necromancerAge = 7 * 24 * time.Hour

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toUserBrief(u *model.User) *dto.UserBriefDTO {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &dto.UserBriefDTO{
		ID:         u.ID,
		Handle:     u.Handle,
		Name:       u.Name,
		Identifier: u.Identifier(),
	}
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	d := &dto.CommentDTO{}
	_ = copier.Copy(d, c)
	d.AuthorLanguageLevel = string(c.AuthorLanguageLevel)
	d.Author = toUserBrief(&c.Author)
	d.ThanksCount = len(c.Thanks)
	d.CreatedAt = formatTime(c.CreatedAt)
	d.UpdatedAt = formatTime(c.UpdatedAt)
	return d
}

func toPostCommentDTO(pc *model.PostComment) *dto.PostCommentDTO {
	d := &dto.PostCommentDTO{}
	_ = copier.Copy(d, pc)
	d.AuthorLanguageLevel = string(pc.AuthorLanguageLevel)
	d.Author = toUserBrief(&pc.Author)
	d.CreatedAt = formatTime(pc.CreatedAt)
	d.UpdatedAt = formatTime(pc.UpdatedAt)
	return d
}

func toThreadDTO(t *model.Thread) *dto.ThreadDTO {
	d := &dto.ThreadDTO{}
	_ = copier.Copy(d, t)
	d.CreatedAt = formatTime(t.CreatedAt)
	d.Comments = make([]*dto.CommentDTO, 0, len(t.Comments))
	for i := range t.Comments {
		d.Comments = append(d.Comments, toCommentDTO(&t.Comments[i]))
	}
	return d
}
