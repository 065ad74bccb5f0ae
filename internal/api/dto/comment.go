package dto

// CommentCreateDTO 在讨论下发表评论
type CommentCreateDTO struct {
	ThreadID uint64 `json:"thread_id" binding:"required"`
	Body     string `json:"body" binding:"required,max=10000"`
}

// PostCommentCreateDTO 发表帖子评论
type PostCommentCreateDTO struct {
	PostID uint64 `json:"post_id" binding:"required"`
	Body   string `json:"body" binding:"required,max=10000"`
}

// CommentUpdateDTO 修改评论内容，两种评论共用
type CommentUpdateDTO struct {
	Body string `json:"body" binding:"required,max=10000" validate:"required,max=10000"`
}

// CommentDTO 讨论评论返回
type CommentDTO struct {
	ID                  uint64        `json:"id"`
	ThreadID            uint64        `json:"thread_id"`
	Body                string        `json:"body"`
	AuthorLanguageLevel string        `json:"author_language_level"`
	Author              *UserBriefDTO `json:"author"`
	ThanksCount         int           `json:"thanks_count"`
	CreatedAt           string        `json:"created_at"`
	UpdatedAt           string        `json:"updated_at"`
}

// PostCommentDTO 帖子评论返回
type PostCommentDTO struct {
	ID                  uint64        `json:"id"`
	PostID              uint64        `json:"post_id"`
	Body                string        `json:"body"`
	AuthorLanguageLevel string        `json:"author_language_level"`
	Author              *UserBriefDTO `json:"author"`
	CreatedAt           string        `json:"created_at"`
	UpdatedAt           string        `json:"updated_at"`
}
