package models

import "time"

// LikeTarget identifies the kind of entity a like points at.
type LikeTarget string

const (
	// LikeTargetVideo marks a like on a video.
	LikeTargetVideo LikeTarget = "video"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTarget = "comment"
	// LikeTargetTweet marks a like on a tweet.
	LikeTargetTweet LikeTarget = "tweet"
)

// Valid reports whether t is one of the known like targets.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like records that a user liked exactly one video, comment, or tweet.
// The (TargetType, TargetID) pair replaces three optional references so a
// row can never point at more than one kind of target. The combination of
// LikedByID, TargetType, and TargetID must be unique; toggling deletes the
// row outright.
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	LikedByID  uint       `gorm:"not null;uniqueIndex:idx_like_target" json:"liked_by_id"`
	TargetType LikeTarget `gorm:"type:varchar(16);not null;uniqueIndex:idx_like_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_like_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`

	LikedBy User `gorm:"foreignKey:LikedByID" json:"liked_by,omitempty"`
}
