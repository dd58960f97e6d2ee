package model

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TableUser = "users"

	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

type User struct {
	Id      string `gorm:"primaryKey"`
	Name    string
	Email   string `gorm:"uniqueIndex"`
	Phone   string
	Address string
	Role    string

	// Managed by the external auth service, never read nor serialized here
	Password string `json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return TableUser
}

func (self *User) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}
