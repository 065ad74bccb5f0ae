package handler

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/util"
	"Journaly/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID := util.StrToUint64(c.Param("comment_id"))
	var req dto.CommentUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.GetUint64("user_id"), commentID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := util.StrToUint64(c.Param("comment_id"))
	if commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), c.GetUint64("user_id"), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ThankComment 感谢一条评论，评论作者会收到通知
func (h *CommentHandler) ThankComment(c *gin.Context) {
	commentID := util.StrToUint64(c.Param("comment_id"))
	if commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.commentService.ThankComment(c.Request.Context(), c.GetUint64("user_id"), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
