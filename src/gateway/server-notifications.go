package gateway

import (
	"github.com/ecopickup/backend/src/gateway/response"

	"github.com/gin-gonic/gin"
)

func (self *Server) onGetMyNotifications(c *gin.Context) {
	principal := GetPrincipal(c)
	notifications, err := self.store.ListNotificationsByUser(c.Request.Context(), principal.Id)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.NotificationsFromModels(notifications, false))
}

func (self *Server) onMarkNotificationRead(c *gin.Context) {
	principal := GetPrincipal(c)
	err := self.store.MarkNotificationRead(c.Request.Context(), c.Param("id"), principal.Id)
	if err != nil {
		self.errToResponse(c, err, "Notification not found")
		return
	}

	response.OKMessage(c, "Notification marked as read", nil)
}
