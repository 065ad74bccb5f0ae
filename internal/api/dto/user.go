package dto

// UserBriefDTO 通知与评论中展示的用户
type UserBriefDTO struct {
	ID         uint64 `json:"id"`
	Handle     string `json:"handle"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}
