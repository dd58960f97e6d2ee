package pickup

import (
	"context"
	"errors"
	"time"

	"github.com/ecopickup/backend/src/utils/config"
	"github.com/ecopickup/backend/src/utils/model"

	"gorm.io/gorm"
)

// Store is the persistence surface the lifecycle manager depends on.
// The database implementation lives below, tests inject an in-memory fake.
type Store interface {
	CreateItemWithPickup(ctx context.Context, item *model.Item, pickup *model.Pickup) error
	GetItem(ctx context.Context, id string) (*model.Item, error)
	DeleteItemWithPickups(ctx context.Context, itemId string) error

	GetPickup(ctx context.Context, id string) (*model.Pickup, error)

	// ClaimPickup atomically assigns an unclaimed pending pickup to the
	// agent. Returns ErrNotFound when the pickup does not exist and
	// ErrConflict when it is already claimed.
	ClaimPickup(ctx context.Context, pickupId, agentId string) (*model.Pickup, error)

	// ApplyStatus persists the new status, conditional on the pickup still
	// being at the status the caller validated against. A lost race returns
	// ErrInvalidTransition. For completed it also sets the completion date,
	// flips the item to picked and bumps the agent counter, all within one
	// transaction, so the cascade runs at most once per pickup.
	ApplyStatus(ctx context.Context, pickup *model.Pickup, newStatus string, completedDate *time.Time) error

	GetCategory(ctx context.Context, id string) (*model.Category, error)

	GetAgent(ctx context.Context, id string) (*model.Agent, error)
	GetAgentByUserId(ctx context.Context, userId string) (*model.Agent, error)
	UpdateAgentVerification(ctx context.Context, agent *model.Agent, status string) error

	SaveNotification(ctx context.Context, notification *model.Notification) error
}

// DatabaseStore is the gorm backed Store plus the read side used by the
// API handlers.
type DatabaseStore struct {
	Config *config.Config

	db *gorm.DB
}

func NewDatabaseStore(config *config.Config) (self *DatabaseStore) {
	self = new(DatabaseStore)
	self.Config = config
	return
}

func (self *DatabaseStore) WithDB(db *gorm.DB) *DatabaseStore {
	self.db = db
	return self
}

func (self *DatabaseStore) CreateItemWithPickup(ctx context.Context, item *model.Item, pickup *model.Pickup) (err error) {
	return self.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		err = tx.Create(item).Error
		if err != nil {
			return
		}

		pickup.ItemId = item.Id
		return tx.Create(pickup).Error
	})
}

func (self *DatabaseStore) GetItem(ctx context.Context, id string) (item *model.Item, err error) {
	item = new(model.Item)
	err = self.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		First(item, "id = ?", id).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return
}

func (self *DatabaseStore) DeleteItemWithPickups(ctx context.Context, itemId string) (err error) {
	return self.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		err = tx.Where("item_id = ?", itemId).Delete(&model.Pickup{}).Error
		if err != nil {
			return
		}
		return tx.Delete(&model.Item{}, "id = ?", itemId).Error
	})
}

func (self *DatabaseStore) GetPickup(ctx context.Context, id string) (pickup *model.Pickup, err error) {
	pickup = new(model.Pickup)
	err = self.db.WithContext(ctx).First(pickup, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return
}

func (self *DatabaseStore) ClaimPickup(ctx context.Context, pickupId, agentId string) (pickup *model.Pickup, err error) {
	// Single conditional update, only one concurrent claim can match
	res := self.db.WithContext(ctx).
		Model(&model.Pickup{}).
		Where("id = ?", pickupId).
		Where("agent_id IS NULL").
		Where("status = ?", model.PickupStatusPending).
		Updates(map[string]interface{}{
			"agent_id": agentId,
			"status":   model.PickupStatusAccepted,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		err = self.db.WithContext(ctx).
			Model(&model.Pickup{}).
			Where("id = ?", pickupId).
			Count(&count).
			Error
		if err != nil {
			return
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	return self.GetPickup(ctx, pickupId)
}

func (self *DatabaseStore) ApplyStatus(ctx context.Context, pickup *model.Pickup, newStatus string, completedDate *time.Time) (err error) {
	return self.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		updates := map[string]interface{}{"status": newStatus}
		if completedDate != nil {
			updates["completed_date"] = completedDate
		}

		// Conditional on the from-status so concurrent updates cannot both
		// pass the transition check and run the cascade
		res := tx.Model(&model.Pickup{}).
			Where("id = ?", pickup.Id).
			Where("status = ?", pickup.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		if newStatus != model.PickupStatusCompleted {
			return
		}

		// Completion cascade
		err = tx.Model(&model.Item{}).
			Where("id = ?", pickup.ItemId).
			Update("status", model.ItemStatusPicked).
			Error
		if err != nil {
			return
		}

		if pickup.AgentId != nil {
			err = tx.Model(&model.Agent{}).
				Where("id = ?", *pickup.AgentId).
				Update("total_pickups", gorm.Expr("total_pickups + 1")).
				Error
		}
		return
	})
}

func (self *DatabaseStore) GetAgent(ctx context.Context, id string) (agent *model.Agent, err error) {
	agent = new(model.Agent)
	err = self.db.WithContext(ctx).First(agent, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return
}

func (self *DatabaseStore) GetAgentByUserId(ctx context.Context, userId string) (agent *model.Agent, err error) {
	agent = new(model.Agent)
	err = self.db.WithContext(ctx).First(agent, "user_id = ?", userId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return
}

func (self *DatabaseStore) UpdateAgentVerification(ctx context.Context, agent *model.Agent, status string) (err error) {
	err = self.db.WithContext(ctx).
		Model(&model.Agent{}).
		Where("id = ?", agent.Id).
		Update("verification_status", status).
		Error
	if err != nil {
		return
	}
	agent.VerificationStatus = status
	return
}

func (self *DatabaseStore) SaveNotification(ctx context.Context, notification *model.Notification) (err error) {
	return self.db.WithContext(ctx).Create(notification).Error
}
