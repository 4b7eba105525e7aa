// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Every user doubles as a channel that
// other users can subscribe to.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	FullName     string         `gorm:"not null" json:"full_name"`
	Avatar       string         `gorm:"not null" json:"avatar"`
	CoverImage   string         `json:"cover_image,omitempty"`
	RefreshToken string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Channel read-model fields, computed at query time.
	SubscribersCount     int  `gorm:"->" json:"subscribers_count"`
	ChannelsSubscribedTo int  `gorm:"->" json:"channels_subscribed_to"`
	IsSubscribed         bool `gorm:"->" json:"is_subscribed"`
}
