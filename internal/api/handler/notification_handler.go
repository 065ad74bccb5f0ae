package handler

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/pkg/response"
	"Journaly/internal/pkg/util"
	"Journaly/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications 一级通知列表
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	list, err := h.notificationService.ListNotifications(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetNotificationDetail 二级详情，支持 /notifications/3,5,8 同组多条
func (h *NotificationHandler) GetNotificationDetail(c *gin.Context) {
	ids, ok := util.ParseIDs(c.Param("notification_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	detail, err := h.notificationService.GetNotificationDetail(c.Request.Context(), c.GetUint64("user_id"), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.notificationService.GetUnreadCount(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.NotificationIDsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.GetUint64("user_id"), req.IDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 一键已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), c.GetUint64("user_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	var req dto.NotificationIDsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), c.GetUint64("user_id"), req.IDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
