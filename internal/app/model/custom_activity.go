package model

import (
	"time"
)

// CustomActivity is a user-defined activity label attached to journal entries.
type CustomActivity struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserEmail string    `gorm:"size:255;not null;uniqueIndex:idx_custom_activities_email_name" json:"user_email"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_custom_activities_email_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (CustomActivity) TableName() string {
	return "custom_activities"
}
