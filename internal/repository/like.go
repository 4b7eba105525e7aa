package repository

import (
	"context"

	"github.com/SumiranBhawsar/youtube-clone/internal/cache"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes on videos,
// comments, and tweets.
type LikeRepository interface {
	Toggle(ctx context.Context, userID uint, target models.LikeTarget, targetID uint) (bool, error)
	ListLikedVideos(ctx context.Context, userID uint, params PageParams) (*Page[models.Video], error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle likes the target if no like exists, or removes the existing like.
// Returns true when the call resulted in a like, false when it removed one.
// The insert-first approach keeps concurrent toggles from erroring on the
// unique index.
func (r *likeRepository) Toggle(ctx context.Context, userID uint, target models.LikeTarget, targetID uint) (bool, error) {
	if !target.Valid() {
		return false, models.NewValidationError("invalid like target type")
	}

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (liked_by_id, target_type, target_id, created_at)
		 VALUES (?, ?, ?, NOW())
		 ON CONFLICT (liked_by_id, target_type, target_id) DO NOTHING`,
		userID, target, targetID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}

	liked := result.RowsAffected > 0
	if !liked {
		if err := r.db.WithContext(ctx).
			Where("liked_by_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
			Delete(&models.Like{}).Error; err != nil {
			return false, models.NewInternalError(err)
		}
	}

	if target == models.LikeTargetVideo {
		cache.InvalidateVideo(ctx, targetID)
	}
	return liked, nil
}

// ListLikedVideos returns the videos the user has liked, newest like first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint, params PageParams) (*Page[models.Video], error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN likes ON likes.target_type = 'video' AND likes.target_id = videos.id").
		Where("likes.liked_by_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var videos []models.Video
	if err := base.
		Preload("Owner").
		Order("likes.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(videos, total, params), nil
}
