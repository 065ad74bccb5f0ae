package dto

// NotificationIDsReq 标记已读 / 删除
type NotificationIDsReq struct {
	IDs []uint64 `json:"ids" binding:"required,min=1,max=200,dive,gt=0"`
}

// UnreadCountDTO 未读数返回
type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// PostPreviewDTO 通知里的帖子预览
type PostPreviewDTO struct {
	ID       uint64        `json:"id"`
	Title    string        `json:"title"`
	ImageURL string        `json:"image_url"`
	AuthorID uint64        `json:"author_id"`
	Author   *UserBriefDTO `json:"author,omitempty"`
	Link     string        `json:"link"`
}

// LevelOneDTO 通知列表中的一条汇总
type LevelOneDTO struct {
	ID              uint64          `json:"id"`
	IDs             []uint64        `json:"ids"`
	Type            string          `json:"type"`
	ReadStatus      string          `json:"read_status"`
	Count           int             `json:"count"`
	TranslationKey  string          `json:"translation_key"`
	TranslationArgs map[string]any  `json:"translation_args"`
	Post            *PostPreviewDTO `json:"post,omitempty"`
	Users           []*UserBriefDTO `json:"users"`
	BumpedAt        string          `json:"bumped_at"`
}

// NotificationCommentDTO 通知详情中的评论
type NotificationCommentDTO struct {
	ID        uint64        `json:"id"`
	Body      string        `json:"body"`
	Author    *UserBriefDTO `json:"author"`
	CreatedAt string        `json:"created_at"`
	Link      string        `json:"link"`
}

// NotificationThanksDTO 通知详情中的感谢
type NotificationThanksDTO struct {
	ID          uint64        `json:"id"`
	CommentID   uint64        `json:"comment_id"`
	CommentBody string        `json:"comment_body"`
	Author      *UserBriefDTO `json:"author"`
	CreatedAt   string        `json:"created_at"`
	Link        string        `json:"link"`
}

// ThreadGroupDTO 按讨论分组
type ThreadGroupDTO struct {
	ThreadID           uint64                    `json:"thread_id"`
	HighlightedContent string                    `json:"highlighted_content"`
	Link               string                    `json:"link"`
	Comments           []*NotificationCommentDTO `json:"comments,omitempty"`
	Thanks             []*NotificationThanksDTO  `json:"thanks,omitempty"`
}

// LevelTwoDTO 通知详情
type LevelTwoDTO struct {
	IDs             []uint64                  `json:"ids"`
	Type            string                    `json:"type"`
	ReadStatus      string                    `json:"read_status"`
	TranslationKey  string                    `json:"translation_key"`
	TranslationArgs map[string]any            `json:"translation_args"`
	Post            *PostPreviewDTO           `json:"post,omitempty"`
	Threads         []*ThreadGroupDTO         `json:"threads,omitempty"`
	Comments        []*NotificationCommentDTO `json:"comments,omitempty"`
	Users           []*UserBriefDTO           `json:"users,omitempty"`
	Posts           []*PostPreviewDTO         `json:"posts,omitempty"`
}
