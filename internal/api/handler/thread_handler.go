package handler

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/util"
	"Journaly/internal/service"

	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	threadService service.ThreadService
}

func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// CreateThread 在帖子的一段划线上开启讨论
func (h *ThreadHandler) CreateThread(c *gin.Context) {
	var req dto.ThreadCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	thread, err := h.threadService.CreateThread(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, thread)
}

func (h *ThreadHandler) GetThread(c *gin.Context) {
	threadID := util.StrToUint64(c.Param("thread_id"))
	if threadID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	thread, err := h.threadService.GetThread(c.Request.Context(), threadID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, thread)
}

// DeleteThread 只有没有评论的讨论可以删除
func (h *ThreadHandler) DeleteThread(c *gin.Context) {
	threadID := util.StrToUint64(c.Param("thread_id"))
	if threadID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.threadService.DeleteThread(c.Request.Context(), c.GetUint64("user_id"), threadID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
