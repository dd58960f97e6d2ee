package gateway

import (
	"github.com/ecopickup/backend/src/gateway/request"
	"github.com/ecopickup/backend/src/gateway/response"
	"github.com/ecopickup/backend/src/utils/model"

	"github.com/gin-gonic/gin"
)

const adminNotificationsLimit = 100

func (self *Server) onGetAllUsers(c *gin.Context) {
	users, err := self.store.ListUsers(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	out := make([]*response.Contact, 0, len(users))
	for _, user := range users {
		out = append(out, response.ContactFromUser(user, true))
	}
	response.OK(c, out)
}

func (self *Server) onGetAllAgents(c *gin.Context) {
	agents, err := self.store.ListAgents(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.AgentsFromModels(agents, true))
}

func (self *Server) onVerifyAgent(c *gin.Context) {
	var in request.VerifyAgent
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, "Invalid request body")
		return
	}

	principal := GetPrincipal(c)
	agent, err := self.manager.VerifyAgent(c.Request.Context(), principal, c.Param("id"), in.VerificationStatus)
	if err != nil {
		self.errToResponse(c, err, "Agent not found")
		return
	}

	response.OKMessage(c, "Agent verification updated", response.AgentFromModel(agent, true))
}

func (self *Server) onGetAllNotifications(c *gin.Context) {
	notifications, err := self.store.ListAllNotifications(c.Request.Context(), adminNotificationsLimit)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.NotificationsFromModels(notifications, true))
}

func (self *Server) onGetAnalytics(c *gin.Context) {
	analytics, err := self.store.GetAnalytics(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, analytics)
}

func (self *Server) onCreateCategory(c *gin.Context) {
	var in request.Category
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, "Invalid request body")
		return
	}

	category := &model.Category{
		Name:        in.Name,
		Icon:        in.Icon,
		Description: in.Description,
	}
	err = self.store.CreateCategory(c.Request.Context(), category)
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.Created(c, "Category created", response.CategoryFromModel(category))
}

func (self *Server) onGetCategories(c *gin.Context) {
	categories, err := self.store.ListCategories(c.Request.Context())
	if err != nil {
		self.errToResponse(c, err, "")
		return
	}

	response.OK(c, response.CategoriesFromModels(categories))
}

func (self *Server) onUpdateCategory(c *gin.Context) {
	var in request.Category
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, "Invalid request body")
		return
	}

	category := &model.Category{
		Id:          c.Param("id"),
		Name:        in.Name,
		Icon:        in.Icon,
		Description: in.Description,
	}
	err = self.store.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		self.errToResponse(c, err, "Category not found")
		return
	}

	response.OKMessage(c, "Category updated", response.CategoryFromModel(category))
}

func (self *Server) onDeleteCategory(c *gin.Context) {
	err := self.store.DeleteCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		self.errToResponse(c, err, "Category not found")
		return
	}

	response.OKMessage(c, "Category deleted", nil)
}
