package handler

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/util"
	"Journaly/internal/service"

	"github.com/gin-gonic/gin"
)

type PostCommentHandler struct {
	postCommentService service.PostCommentService
}

func NewPostCommentHandler(postCommentService service.PostCommentService) *PostCommentHandler {
	return &PostCommentHandler{postCommentService: postCommentService}
}

func (h *PostCommentHandler) CreatePostComment(c *gin.Context) {
	var req dto.PostCommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	pc, err := h.postCommentService.CreatePostComment(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pc)
}

func (h *PostCommentHandler) UpdatePostComment(c *gin.Context) {
	id := util.StrToUint64(c.Param("post_comment_id"))
	var req dto.CommentUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil || id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	pc, err := h.postCommentService.UpdatePostComment(c.Request.Context(), c.GetUint64("user_id"), id, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pc)
}

func (h *PostCommentHandler) DeletePostComment(c *gin.Context) {
	id := util.StrToUint64(c.Param("post_comment_id"))
	if id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.postCommentService.DeletePostComment(c.Request.Context(), c.GetUint64("user_id"), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
