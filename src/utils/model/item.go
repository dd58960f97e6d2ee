package model

import (
	"time"

	"github.com/jackc/pgtype"
	"github.com/lib/pq"
	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TableItem = "items"

	ItemActionSell   = "sell"
	ItemActionDonate = "donate"
	ItemActionScrap  = "scrap"

	ItemStatusAvailable = "available"
	ItemStatusPending   = "pending"
	ItemStatusPicked    = "picked"
)

type Item struct {
	Id string `gorm:"primaryKey"`

	// Owning user
	UserId string `gorm:"index"`
	User   *User  `gorm:"foreignKey:UserId"`

	Title       string
	Description string

	CategoryId string    `gorm:"index"`
	Category   *Category `gorm:"foreignKey:CategoryId"`

	Images pq.StringArray `gorm:"type:text[]"`

	Action string

	// Mutated only by the lifecycle manager when the linked pickup completes
	Status string `gorm:"default:available"`

	// Optional GeoJSON point
	Location pgtype.JSONB `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Item) TableName() string {
	return TableItem
}

func (self *Item) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}

func ValidItemAction(action string) bool {
	switch action {
	case ItemActionSell, ItemActionDonate, ItemActionScrap:
		return true
	}
	return false
}
