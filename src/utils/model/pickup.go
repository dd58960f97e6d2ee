package model

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TablePickup = "pickups"

	PickupStatusPending   = "pending"
	PickupStatusAccepted  = "accepted"
	PickupStatusOnTheWay  = "on_the_way"
	PickupStatusPicked    = "picked"
	PickupStatusCompleted = "completed"
)

// pickupStatusRank orders the lifecycle states. Transitions may only move
// to a strictly higher rank.
var pickupStatusRank = map[string]int{
	PickupStatusPending:   0,
	PickupStatusAccepted:  1,
	PickupStatusOnTheWay:  2,
	PickupStatusPicked:    3,
	PickupStatusCompleted: 4,
}

type Pickup struct {
	Id string `gorm:"primaryKey"`

	// Exactly one owning item
	ItemId string `gorm:"index"`
	Item   *Item  `gorm:"foreignKey:ItemId"`

	// Requester, copied from the item owner at creation
	UserId string `gorm:"index"`
	User   *User  `gorm:"foreignKey:UserId"`

	// Null until claimed, set exactly once, never cleared
	AgentId *string `gorm:"index"`
	Agent   *Agent  `gorm:"foreignKey:AgentId"`

	Status string `gorm:"default:pending;index"`

	ScheduledDate *time.Time

	// Set iff status becomes completed
	CompletedDate *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Pickup) TableName() string {
	return TablePickup
}

func (self *Pickup) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}

func ValidPickupStatus(status string) bool {
	_, ok := pickupStatusRank[status]
	return ok
}

// PickupStatusAdvances reports whether moving from one status to the other
// is a forward transition.
func PickupStatusAdvances(from, to string) bool {
	fromRank, ok := pickupStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := pickupStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
