package dto

// ThreadCreateDTO 创建划线讨论
type ThreadCreateDTO struct {
	PostID             uint64 `json:"post_id" binding:"required" validate:"required"`
	StartIndex         int    `json:"start_index" binding:"min=0" validate:"min=0"`
	EndIndex           int    `json:"end_index" binding:"gtefield=StartIndex" validate:"gtefield=StartIndex"`
	HighlightedContent string `json:"highlighted_content" binding:"required,max=5000" validate:"required,max=5000"`
}

type ThreadDTO struct {
	ID                 uint64        `json:"id"`
	PostID             uint64        `json:"post_id"`
	StartIndex         int           `json:"start_index"`
	EndIndex           int           `json:"end_index"`
	HighlightedContent string        `json:"highlighted_content"`
	Archived           bool          `json:"archived"`
	CreatedAt          string        `json:"created_at"`
	Comments           []*CommentDTO `json:"comments"`
}
