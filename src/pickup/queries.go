package pickup

import (
	"context"
	"errors"

	"github.com/ecopickup/backend/src/utils/model"

	"gorm.io/gorm"
)

// Read side of the database store, used by the API handlers. Joined
// entities are optional, a dangling reference yields a nil field rather
// than a failed query.

func (self *DatabaseStore) pickupsWithRelations(ctx context.Context) *gorm.DB {
	return self.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Category").
		Preload("User").
		Preload("Agent").
		Preload("Agent.User").
		Order("created_at DESC")
}

func (self *DatabaseStore) ListPickupsByUser(ctx context.Context, userId string) (pickups []*model.Pickup, err error) {
	err = self.pickupsWithRelations(ctx).
		Where("user_id = ?", userId).
		Find(&pickups).
		Error
	return
}

func (self *DatabaseStore) ListPickupsByAgent(ctx context.Context, agentId string) (pickups []*model.Pickup, err error) {
	err = self.pickupsWithRelations(ctx).
		Where("agent_id = ?", agentId).
		Find(&pickups).
		Error
	return
}

func (self *DatabaseStore) ListPendingPickups(ctx context.Context) (pickups []*model.Pickup, err error) {
	err = self.pickupsWithRelations(ctx).
		Where("status = ?", model.PickupStatusPending).
		Where("agent_id IS NULL").
		Find(&pickups).
		Error
	return
}

func (self *DatabaseStore) ListAllPickups(ctx context.Context) (pickups []*model.Pickup, err error) {
	err = self.pickupsWithRelations(ctx).
		Find(&pickups).
		Error
	return
}

func (self *DatabaseStore) ListItemsByUser(ctx context.Context, userId string) (items []*model.Item, err error) {
	err = self.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&items).
		Error
	return
}

func (self *DatabaseStore) ListAllItems(ctx context.Context) (items []*model.Item, err error) {
	err = self.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Order("created_at DESC").
		Find(&items).
		Error
	return
}

func (self *DatabaseStore) ListUsers(ctx context.Context) (users []*model.User, err error) {
	err = self.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).
		Error
	return
}

func (self *DatabaseStore) ListAgents(ctx context.Context) (agents []*model.Agent, err error) {
	err = self.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&agents).
		Error
	return
}

func (self *DatabaseStore) ListNotificationsByUser(ctx context.Context, userId string) (notifications []*model.Notification, err error) {
	err = self.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&notifications).
		Error
	return
}

func (self *DatabaseStore) ListAllNotifications(ctx context.Context, limit int) (notifications []*model.Notification, err error) {
	err = self.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).
		Error
	return
}

// MarkNotificationRead flips the read flag. Scoped to the recipient so a
// user cannot touch someone else's notifications.
func (self *DatabaseStore) MarkNotificationRead(ctx context.Context, id, userId string) (err error) {
	res := self.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userId).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return
}

func (self *DatabaseStore) GetCategory(ctx context.Context, id string) (category *model.Category, err error) {
	category = new(model.Category)
	err = self.db.WithContext(ctx).First(category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return
}

func (self *DatabaseStore) CreateCategory(ctx context.Context, category *model.Category) (err error) {
	return self.db.WithContext(ctx).Create(category).Error
}

func (self *DatabaseStore) ListCategories(ctx context.Context) (categories []*model.Category, err error) {
	err = self.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).
		Error
	return
}

func (self *DatabaseStore) UpdateCategory(ctx context.Context, category *model.Category) (err error) {
	res := self.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", category.Id).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"icon":        category.Icon,
			"description": category.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return
}

func (self *DatabaseStore) DeleteCategory(ctx context.Context, id string) (err error) {
	res := self.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return
}

type CategoryStat struct {
	CategoryId string `json:"categoryId"`
	Count      int64  `json:"count"`
}

type Analytics struct {
	TotalUsers       int64          `json:"totalUsers"`
	TotalAgents      int64          `json:"totalAgents"`
	TotalItems       int64          `json:"totalItems"`
	TotalPickups     int64          `json:"totalPickups"`
	CompletedPickups int64          `json:"completedPickups"`
	PendingPickups   int64          `json:"pendingPickups"`
	CategoryStats    []CategoryStat `json:"categoryStats"`
}

func (self *DatabaseStore) GetAnalytics(ctx context.Context) (analytics *Analytics, err error) {
	analytics = new(Analytics)
	db := self.db.WithContext(ctx)

	counts := []struct {
		out   *int64
		query *gorm.DB
	}{
		{&analytics.TotalUsers, db.Model(&model.User{})},
		{&analytics.TotalAgents, db.Model(&model.Agent{})},
		{&analytics.TotalItems, db.Model(&model.Item{})},
		{&analytics.TotalPickups, db.Model(&model.Pickup{})},
		{&analytics.CompletedPickups, db.Model(&model.Pickup{}).Where("status = ?", model.PickupStatusCompleted)},
		{&analytics.PendingPickups, db.Model(&model.Pickup{}).Where("status = ?", model.PickupStatusPending)},
	}
	for _, count := range counts {
		err = count.query.Count(count.out).Error
		if err != nil {
			return nil, err
		}
	}

	err = db.Model(&model.Item{}).
		Select("category_id, count(*) as count").
		Group("category_id").
		Scan(&analytics.CategoryStats).
		Error
	if err != nil {
		return nil, err
	}

	return
}
