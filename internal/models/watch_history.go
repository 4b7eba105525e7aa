package models

import "time"

// WatchHistoryEntry records that a user watched a video. The unique
// (UserID, VideoID) pair de-duplicates repeat views; WatchedAt is bumped on
// every fetch so the history lists most-recently-watched first.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video_history" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_user_video_history" json:"video_id"`
	WatchedAt time.Time `gorm:"not null" json:"watched_at"`
}
