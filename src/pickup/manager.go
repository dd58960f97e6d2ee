package pickup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecopickup/backend/src/notify"
	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/logger"
	"github.com/ecopickup/backend/src/utils/model"
	"github.com/ecopickup/backend/src/utils/monitoring"

	"github.com/jackc/pgtype"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Principal is the authenticated actor resolved by the auth service
type Principal struct {
	Id   string
	Role string
}

func (self Principal) IsAdmin() bool {
	return self.Role == model.RoleAdmin
}

// Broadcaster pushes events to live sessions, addressed by a per-user
// channel or the global channel every connected session receives.
type Broadcaster interface {
	PublishToUser(userId string, event string, payload interface{})
	PublishGlobal(event string, payload interface{})
}

// ItemInput is everything a user submits when listing an item
type ItemInput struct {
	Title         string
	Description   string
	CategoryId    string
	Action        string
	Images        []string
	Location      json.RawMessage
	Notes         string
	ScheduledDate *time.Time
}

// Manager owns the pickup state machine: creation, exclusive assignment,
// status transitions and the side effects each transition triggers.
type Manager struct {
	Config *config.Config
	Log    *logrus.Entry

	store       Store
	notifier    *notify.Notifier
	broadcaster Broadcaster
	monitor     *monitoring.Monitor
}

func NewManager(config *config.Config) (self *Manager) {
	self = new(Manager)
	self.Config = config
	self.Log = logger.NewSublogger("lifecycle")
	return
}

func (self *Manager) WithStore(store Store) *Manager {
	self.store = store
	return self
}

func (self *Manager) WithNotifier(notifier *notify.Notifier) *Manager {
	self.notifier = notifier
	return self
}

func (self *Manager) WithBroadcaster(broadcaster Broadcaster) *Manager {
	self.broadcaster = broadcaster
	return self
}

func (self *Manager) WithMonitor(monitor *monitoring.Monitor) *Manager {
	self.monitor = monitor
	return self
}

// CreateItem stores the item together with its pending pickup and signals
// availability to all connected sessions. Operational signaling only, no
// notification record is written.
func (self *Manager) CreateItem(ctx context.Context, principal Principal, input *ItemInput) (item *model.Item, pickup *model.Pickup, err error) {
	if input.Title == "" || input.Description == "" || input.CategoryId == "" || input.Action == "" {
		return nil, nil, ErrInvalidInput
	}
	if !model.ValidItemAction(input.Action) {
		return nil, nil, ErrInvalidInput
	}

	_, err = self.store.GetCategory(ctx, input.CategoryId)
	if err == ErrNotFound {
		return nil, nil, ErrInvalidInput
	}
	if err != nil {
		return nil, nil, err
	}

	item = &model.Item{
		UserId:      principal.Id,
		Title:       input.Title,
		Description: input.Description,
		CategoryId:  input.CategoryId,
		Images:      pq.StringArray(input.Images),
		Action:      input.Action,
		Status:      model.ItemStatusAvailable,
	}
	if len(input.Location) > 0 {
		err = item.Location.Set([]byte(input.Location))
		if err != nil {
			return nil, nil, ErrInvalidInput
		}
	} else {
		item.Location = pgtype.JSONB{Status: pgtype.Null}
	}

	pickup = &model.Pickup{
		UserId:        principal.Id,
		Status:        model.PickupStatusPending,
		Notes:         input.Notes,
		ScheduledDate: input.ScheduledDate,
	}

	err = self.store.CreateItemWithPickup(ctx, item, pickup)
	if err != nil {
		self.Log.WithError(err).Error("Failed to create item with pickup")
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.DbError.Inc()
		}
		return nil, nil, err
	}

	self.broadcaster.PublishGlobal(model.EventNewPickupAvailable, &model.NewPickupAvailableEvent{
		PickupId: pickup.Id,
		ItemId:   item.Id,
	})

	if self.monitor != nil {
		self.monitor.GetReport().Pickup.State.PickupsCreated.Inc()
	}

	self.Log.WithField("item_id", item.Id).WithField("pickup_id", pickup.Id).Debug("Created item with pickup")
	return
}

// AcceptPickup claims a pending pickup for the calling agent. At most one
// concurrent claim can win, the others get ErrConflict.
func (self *Manager) AcceptPickup(ctx context.Context, principal Principal, pickupId string) (pickup *model.Pickup, err error) {
	agent, err := self.store.GetAgentByUserId(ctx, principal.Id)
	if err != nil {
		return
	}

	pickup, err = self.store.ClaimPickup(ctx, pickupId, agent.Id)
	if err != nil {
		if err == ErrConflict && self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.AcceptConflicts.Inc()
		}
		return
	}

	_, err = self.notifier.Notify(ctx, pickup.UserId,
		"An agent has accepted your pickup request",
		model.NotificationTypeSuccess,
		pickup.Id, model.RelatedTypePickup)
	if err != nil {
		return
	}

	self.broadcaster.PublishToUser(pickup.UserId, model.EventPickupUpdated, &model.PickupUpdatedEvent{
		PickupId: pickup.Id,
		Status:   pickup.Status,
		AgentId:  agent.Id,
	})

	if self.monitor != nil {
		self.monitor.GetReport().Pickup.State.PickupsAccepted.Inc()
	}

	self.Log.WithField("pickup_id", pickup.Id).WithField("agent_id", agent.Id).Debug("Pickup accepted")
	return
}

// UpdateStatus advances the pickup state machine. Only the assigned agent
// or an admin may do it, and the status may only move forward. Completion
// cascades into the item status and the agent counter in one transaction.
func (self *Manager) UpdateStatus(ctx context.Context, principal Principal, pickupId, newStatus string) (pickup *model.Pickup, err error) {
	if !model.ValidPickupStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	pickup, err = self.store.GetPickup(ctx, pickupId)
	if err != nil {
		return
	}

	err = self.authorizeUpdate(ctx, principal, pickup)
	if err != nil {
		return nil, err
	}

	if !model.PickupStatusAdvances(pickup.Status, newStatus) {
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.InvalidTransitions.Inc()
		}
		return nil, ErrInvalidTransition
	}

	var completedDate *time.Time
	if newStatus == model.PickupStatusCompleted {
		now := time.Now()
		completedDate = &now
	}

	err = self.store.ApplyStatus(ctx, pickup, newStatus, completedDate)
	if err == ErrInvalidTransition {
		// A concurrent update won the race after our read
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.InvalidTransitions.Inc()
		}
		return nil, err
	}
	if err != nil {
		// The cascade is transactional, nothing was partially applied
		self.Log.WithError(err).WithField("pickup_id", pickup.Id).Error("Failed to apply status")
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.DbError.Inc()
		}
		return nil, err
	}

	pickup.Status = newStatus
	pickup.CompletedDate = completedDate

	if notification, ok := NotificationForStatus(newStatus); ok {
		_, err = self.notifier.Notify(ctx, pickup.UserId,
			notification.Message, notification.Type,
			pickup.Id, model.RelatedTypePickup)
		if err != nil {
			return nil, err
		}
	}

	self.broadcaster.PublishToUser(pickup.UserId, model.EventPickupUpdated, &model.PickupUpdatedEvent{
		PickupId: pickup.Id,
		Status:   pickup.Status,
	})
	self.broadcaster.PublishGlobal(model.EventAdminPickupUpdated, &model.AdminPickupUpdatedEvent{
		PickupId: pickup.Id,
		Status:   pickup.Status,
	})

	if self.monitor != nil {
		self.monitor.GetReport().Pickup.State.StatusUpdates.Inc()
		if newStatus == model.PickupStatusCompleted {
			self.monitor.GetReport().Pickup.State.PickupsCompleted.Inc()
		}
	}

	self.Log.WithField("pickup_id", pickup.Id).WithField("status", newStatus).Debug("Pickup status updated")
	return
}

func (self *Manager) authorizeUpdate(ctx context.Context, principal Principal, pickup *model.Pickup) (err error) {
	if principal.IsAdmin() {
		return nil
	}

	agent, err := self.store.GetAgentByUserId(ctx, principal.Id)
	if err == ErrNotFound {
		return ErrForbidden
	}
	if err != nil {
		return
	}

	if pickup.AgentId == nil || *pickup.AgentId != agent.Id {
		return ErrForbidden
	}
	return nil
}

// DeleteItem removes the item and every pickup referencing it
func (self *Manager) DeleteItem(ctx context.Context, principal Principal, itemId string) (err error) {
	item, err := self.store.GetItem(ctx, itemId)
	if err != nil {
		return
	}

	if item.UserId != principal.Id && !principal.IsAdmin() {
		return ErrForbidden
	}

	err = self.store.DeleteItemWithPickups(ctx, itemId)
	if err != nil {
		self.Log.WithError(err).WithField("item_id", itemId).Error("Failed to delete item")
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.DbError.Inc()
		}
		return
	}

	self.Log.WithField("item_id", itemId).Debug("Item deleted with its pickups")
	return
}

// VerifyAgent lets an admin change an agent's verification status and
// notifies the agent's user about the outcome
func (self *Manager) VerifyAgent(ctx context.Context, principal Principal, agentId, status string) (agent *model.Agent, err error) {
	if !principal.IsAdmin() {
		return nil, ErrForbidden
	}
	if !model.ValidVerificationStatus(status) {
		return nil, ErrInvalidStatus
	}

	agent, err = self.store.GetAgent(ctx, agentId)
	if err != nil {
		return
	}

	err = self.store.UpdateAgentVerification(ctx, agent, status)
	if err != nil {
		if self.monitor != nil {
			self.monitor.GetReport().Pickup.Errors.DbError.Inc()
		}
		return nil, err
	}

	notificationType := model.NotificationTypeInfo
	if status == model.VerificationStatusVerified {
		notificationType = model.NotificationTypeSuccess
	}
	_, err = self.notifier.Notify(ctx, agent.UserId,
		"Your agent verification status has been updated to "+status,
		notificationType,
		agent.Id, model.RelatedTypeAgent)
	if err != nil {
		return nil, err
	}

	return
}
