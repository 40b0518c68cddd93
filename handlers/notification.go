package handlers

import (
	"net/http"

	"unisched/models"
	"unisched/services/notification"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	NotificationService notification.NotificationService
}

func (h *NotificationHandler) SendNotificationHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.NotificationInput
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.NotificationService.Send(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) MyNotificationsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.NotificationService.ListMine(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.NotificationService.ListAll(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) UpdateNotificationHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.NotificationUpdate
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.NotificationService.UpdateMessage(c.Request.Context(), id, c.Param("id"), req.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) DeleteNotificationHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Notification removed"})
}
