package model

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TableNotification = "notifications"

	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"

	RelatedTypePickup = "pickup"
	RelatedTypeItem   = "item"
	RelatedTypeAgent  = "agent"
	RelatedTypeUser   = "user"
)

// Notification is an append-only log entry. The lifecycle manager only ever
// creates records; the read flag is flipped by the mark-read endpoint.
type Notification struct {
	Id string `gorm:"primaryKey"`

	// Recipient
	UserId string `gorm:"index"`
	User   *User  `gorm:"foreignKey:UserId"`

	Message string
	Type    string `gorm:"default:info"`
	Read    bool   `gorm:"default:false"`

	// Loose reference, not enforced by the schema
	RelatedId   *string
	RelatedType *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Notification) TableName() string {
	return TableNotification
}

func (self *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}
