package gateway

import (
	"github.com/ecopickup/backend/src/gateway/request"
	"github.com/ecopickup/backend/src/gateway/response"
	"github.com/ecopickup/backend/src/pickup"
	"github.com/ecopickup/backend/src/utils/model"

	"github.com/gin-gonic/gin"
)

func (self *Server) onCreateItem(c *gin.Context) {
	var in request.CreateItem
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, "Invalid request body")
		return
	}

	principal := GetPrincipal(c)
	item, pickupRecord, err := self.manager.CreateItem(c.Request.Context(), principal, &pickup.ItemInput{
		Title:         in.Title,
		Description:   in.Description,
		CategoryId:    in.CategoryId,
		Action:        in.Action,
		Images:        in.Images,
		Location:      in.Location,
		Notes:         in.Notes,
		ScheduledDate: in.ScheduledDate,
	})
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.Created(c, "Item listed successfully", gin.H{
		"item":   response.ItemFromModel(item, false),
		"pickup": response.OwnerPickup(pickupRecord),
	})
}

func (self *Server) onGetMyItems(c *gin.Context) {
	principal := GetPrincipal(c)
	items, err := self.store.ListItemsByUser(c.Request.Context(), principal.Id)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.ItemsFromModels(items, false))
}

func (self *Server) onGetItem(c *gin.Context) {
	item, err := self.store.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		self.errToResponse(c, err, "Item not found")
		return
	}

	principal := GetPrincipal(c)
	withOwner := principal.IsAdmin() || principal.Role == model.RoleAgent
	response.OK(c, response.ItemFromModel(item, withOwner))
}

func (self *Server) onDeleteItem(c *gin.Context) {
	principal := GetPrincipal(c)
	err := self.manager.DeleteItem(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		self.errToResponse(c, err, "Item not found")
		return
	}

	response.OKMessage(c, "Item deleted successfully", nil)
}

func (self *Server) onGetAllItems(c *gin.Context) {
	items, err := self.store.ListAllItems(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.ItemsFromModels(items, true))
}
