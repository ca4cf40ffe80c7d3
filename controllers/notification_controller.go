package controllers

import (
	"github.com/gin-gonic/gin"

	"divyakart/services"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) ListMine(c *gin.Context) {
	notifications, err := nc.notifications.ListByUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"notifications": notifications})
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "marked read"})
}
