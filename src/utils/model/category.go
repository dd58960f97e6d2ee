package model

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

const (
	TableCategory = "categories"
)

type Category struct {
	Id          string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Icon        string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string {
	return TableCategory
}

func (self *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if self.Id == "" {
		self.Id = xid.New().String()
	}
	return
}
