package request

import (
	"encoding/json"
	"time"
)

type CreateItem struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	CategoryId    string          `json:"categoryId" binding:"required"`
	Action        string          `json:"action" binding:"required"`
	Images        []string        `json:"images"`
	Location      json.RawMessage `json:"location"`
	Notes         string          `json:"notes"`
	ScheduledDate *time.Time      `json:"scheduledDate"`
}

type UpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

type VerifyAgent struct {
	VerificationStatus string `json:"verificationStatus" binding:"required"`
}

type Category struct {
	Name        string `json:"name" binding:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
