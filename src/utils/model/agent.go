package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TableAgent = "agents"

	VerificationStatusPending  = "pending"
	VerificationStatusVerified = "verified"
	VerificationStatusRejected = "rejected"
)

type Agent struct {
	Id string `gorm:"primaryKey"`

	// Exactly one agent profile per user
	UserId string `gorm:"uniqueIndex"`
	User   *User  `gorm:"foreignKey:UserId"`

	VerificationStatus string         `gorm:"default:pending"`
	AssignedAreas      pq.StringArray `gorm:"type:text[]"`

	// Incremented exactly once per pickup that reaches completed
	TotalPickups int64

	Rating float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Agent) TableName() string {
	return TableAgent
}

func (self *Agent) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}

func ValidVerificationStatus(status string) bool {
	switch status {
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
		return true
	}
	return false
}
