package gateway

import (
	"github.com/ecopickup/backend/src/gateway/request"
	"github.com/ecopickup/backend/src/gateway/response"

	"github.com/gin-gonic/gin"
)

func (self *Server) onGetMyPickups(c *gin.Context) {
	principal := GetPrincipal(c)
	pickups, err := self.store.ListPickupsByUser(c.Request.Context(), principal.Id)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.PickupsFromModels(pickups, response.OwnerPickup))
}

func (self *Server) onGetAgentPickups(c *gin.Context) {
	principal := GetPrincipal(c)
	agent, err := self.store.GetAgentByUserId(c.Request.Context(), principal.Id)
	if err != nil {
		self.errToResponse(c, err, "Agent profile not found")
		return
	}

	pickups, err := self.store.ListPickupsByAgent(c.Request.Context(), agent.Id)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.PickupsFromModels(pickups, response.AgentPickup))
}

func (self *Server) onGetPendingPickups(c *gin.Context) {
	pickups, err := self.store.ListPendingPickups(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.PickupsFromModels(pickups, response.AgentPickup))
}

func (self *Server) onAcceptPickup(c *gin.Context) {
	principal := GetPrincipal(c)
	pickupRecord, err := self.manager.AcceptPickup(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		self.errToResponse(c, err, "Pickup not found")
		return
	}

	response.OKMessage(c, "Pickup accepted successfully", response.AgentPickup(pickupRecord))
}

func (self *Server) onUpdatePickupStatus(c *gin.Context) {
	var in request.UpdateStatus
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, "Invalid request body")
		return
	}

	principal := GetPrincipal(c)
	pickupRecord, err := self.manager.UpdateStatus(c.Request.Context(), principal, c.Param("id"), in.Status)
	if err != nil {
		self.errToResponse(c, err, "Pickup not found")
		return
	}

	response.OKMessage(c, "Pickup status updated", response.AgentPickup(pickupRecord))
}

func (self *Server) onGetAllPickups(c *gin.Context) {
	pickups, err := self.store.ListAllPickups(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.PickupsFromModels(pickups, response.AdminPickup))
}
