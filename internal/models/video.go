// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video and its metadata. The file itself lives
// in object storage; only URLs are persisted here.
type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	VideoFile   string  `gorm:"not null" json:"video_file"`
	Thumbnail   string  `gorm:"not null" json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Views       int64   `gorm:"default:0" json:"views"`
	IsPublished bool    `gorm:"default:true" json:"is_published"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// SubscribersCount counts the owner's subscribers (computed)
	SubscribersCount int `gorm:"->" json:"subscribers_count"`
	// IsLiked indicates whether the requesting user liked this video (computed)
	IsLiked bool `gorm:"->" json:"is_liked"`
	// IsSubscribed indicates whether the requesting user subscribes to the owner (computed)
	IsSubscribed bool           `gorm:"->" json:"is_subscribed"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
