package response

import (
	"encoding/json"
	"time"

	"github.com/ecopickup/backend/src/utils/model"
)

// Contact is the slice of a user record that may be shown to another party
type Contact struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	// Only present where the viewer needs it for the pickup itself
	Address string `json:"address,omitempty"`
}

type Category struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

type Item struct {
	Id          string          `json:"id"`
	UserId      string          `json:"userId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CategoryId  string          `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images"`
	Action      string          `json:"action"`
	Status      string          `json:"status"`
	Location    json.RawMessage `json:"location,omitempty"`
	Owner       *Contact        `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Agent struct {
	Id                 string   `json:"id"`
	UserId             string   `json:"userId"`
	VerificationStatus string   `json:"verificationStatus"`
	AssignedAreas      []string `json:"assignedAreas"`
	TotalPickups       int64    `json:"totalPickups"`
	Rating             float64  `json:"rating"`
	User               *Contact `json:"user,omitempty"`
}

type Pickup struct {
	Id            string     `json:"id"`
	ItemId        string     `json:"itemId"`
	Item          *Item      `json:"item,omitempty"`
	UserId        string     `json:"userId"`
	Requester     *Contact   `json:"requester,omitempty"`
	AgentId       *string    `json:"agentId,omitempty"`
	Agent         *Agent     `json:"agent,omitempty"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type Notification struct {
	Id          string    `json:"id"`
	UserId      string    `json:"userId"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	Read        bool      `json:"read"`
	RelatedId   *string   `json:"relatedId,omitempty"`
	RelatedType *string   `json:"relatedType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	User        *Contact  `json:"user,omitempty"`
}

func ContactFromUser(user *model.User, withAddress bool) *Contact {
	if user == nil {
		return nil
	}
	out := &Contact{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}
	if withAddress {
		out.Address = user.Address
	}
	return out
}

func CategoryFromModel(category *model.Category) *Category {
	if category == nil {
		return nil
	}
	return &Category{
		Id:          category.Id,
		Name:        category.Name,
		Icon:        category.Icon,
		Description: category.Description,
	}
}

func CategoriesFromModels(categories []*model.Category) (out []*Category) {
	out = make([]*Category, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryFromModel(category))
	}
	return
}

func ItemFromModel(item *model.Item, withOwner bool) *Item {
	if item == nil {
		return nil
	}
	out := &Item{
		Id:          item.Id,
		UserId:      item.UserId,
		Title:       item.Title,
		Description: item.Description,
		CategoryId:  item.CategoryId,
		Category:    CategoryFromModel(item.Category),
		Images:      item.Images,
		Action:      item.Action,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
	}
	if item.Location.Bytes != nil {
		out.Location = json.RawMessage(item.Location.Bytes)
	}
	if withOwner {
		out.Owner = ContactFromUser(item.User, true)
	}
	return out
}

func ItemsFromModels(items []*model.Item, withOwner bool) (out []*Item) {
	out = make([]*Item, 0, len(items))
	for _, item := range items {
		out = append(out, ItemFromModel(item, withOwner))
	}
	return
}

func AgentFromModel(agent *model.Agent, withUser bool) *Agent {
	if agent == nil {
		return nil
	}
	out := &Agent{
		Id:                 agent.Id,
		UserId:             agent.UserId,
		VerificationStatus: agent.VerificationStatus,
		AssignedAreas:      agent.AssignedAreas,
		TotalPickups:       agent.TotalPickups,
		Rating:             agent.Rating,
	}
	if withUser {
		out.User = ContactFromUser(agent.User, false)
	}
	return out
}

func AgentsFromModels(agents []*model.Agent, withUser bool) (out []*Agent) {
	out = make([]*Agent, 0, len(agents))
	for _, agent := range agents {
		out = append(out, AgentFromModel(agent, withUser))
	}
	return
}

// OwnerPickup is what the requesting user sees: the item plus the agent
// working it, but no requester address echoed back
func OwnerPickup(pickup *model.Pickup) *Pickup {
	out := basePickup(pickup)
	out.Item = ItemFromModel(pickup.Item, false)
	out.Agent = AgentFromModel(pickup.Agent, true)
	return out
}

// AgentPickup is what an agent sees: the item and the requester's contact
// details including the address they pick up from
func AgentPickup(pickup *model.Pickup) *Pickup {
	out := basePickup(pickup)
	out.Item = ItemFromModel(pickup.Item, false)
	out.Requester = ContactFromUser(pickup.User, true)
	return out
}

// AdminPickup joins everything
func AdminPickup(pickup *model.Pickup) *Pickup {
	out := basePickup(pickup)
	out.Item = ItemFromModel(pickup.Item, false)
	out.Requester = ContactFromUser(pickup.User, true)
	out.Agent = AgentFromModel(pickup.Agent, true)
	return out
}

func basePickup(pickup *model.Pickup) *Pickup {
	return &Pickup{
		Id:            pickup.Id,
		ItemId:        pickup.ItemId,
		UserId:        pickup.UserId,
		AgentId:       pickup.AgentId,
		Status:        pickup.Status,
		ScheduledDate: pickup.ScheduledDate,
		CompletedDate: pickup.CompletedDate,
		Notes:         pickup.Notes,
		CreatedAt:     pickup.CreatedAt,
	}
}

func PickupsFromModels(pickups []*model.Pickup, project func(*model.Pickup) *Pickup) (out []*Pickup) {
	out = make([]*Pickup, 0, len(pickups))
	for _, pickup := range pickups {
		out = append(out, project(pickup))
	}
	return
}

func NotificationFromModel(notification *model.Notification, withUser bool) *Notification {
	if notification == nil {
		return nil
	}
	out := &Notification{
		Id:          notification.Id,
		UserId:      notification.UserId,
		Message:     notification.Message,
		Type:        notification.Type,
		Read:        notification.Read,
		RelatedId:   notification.RelatedId,
		RelatedType: notification.RelatedType,
		CreatedAt:   notification.CreatedAt,
	}
	if withUser {
		out.User = ContactFromUser(notification.User, false)
	}
	return out
}

func NotificationsFromModels(notifications []*model.Notification, withUser bool) (out []*Notification) {
	out = make([]*Notification, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, NotificationFromModel(notification, withUser))
	}
	return
}
