package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an ordered collection of videos owned by a user. Names are
// unique per owner, compared case-insensitively.
type Playlist struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text;not null" json:"description"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Videos      []Video `gorm:"many2many:playlist_videos;" json:"videos,omitempty"`

	// TotalVideos is not persisted; computed at query time
	TotalVideos int `gorm:"->" json:"total_videos"`
	// TotalViews sums views across member videos (computed)
	TotalViews int64 `gorm:"->" json:"total_views"`
	// FirstVideoThumbnail is the thumbnail of the earliest-added video (computed)
	FirstVideoThumbnail string         `gorm:"->" json:"first_video_thumbnail,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlaylistVideo is the join row linking playlists to videos. The unique
// pair suppresses duplicate inserts; Position preserves insertion order.
type PlaylistVideo struct {
	PlaylistID uint      `gorm:"primaryKey" json:"playlist_id"`
	VideoID    uint      `gorm:"primaryKey" json:"video_id"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
