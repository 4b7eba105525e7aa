package repository

import (
	"context"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// ChannelStats aggregates a channel's headline numbers for the dashboard.
type ChannelStats struct {
	TotalViews       int64 `json:"total_views"`
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalVideos      int64 `json:"total_videos"`
	TotalLikes       int64 `json:"total_likes"`
}

// DashboardRepository serves the channel owner's dashboard queries.
type DashboardRepository interface {
	GetChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID uint, params PageParams) (*Page[models.Video], error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository returns a new DashboardRepository implementation.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetChannelStats(ctx context.Context, channelID uint) (*ChannelStats, error) {
	var stats ChannelStats

	row := r.db.WithContext(ctx).Raw(
		`SELECT
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = ? AND deleted_at IS NULL) as total_views,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?) as total_subscribers,
			(SELECT COUNT(*) FROM videos WHERE owner_id = ? AND deleted_at IS NULL) as total_videos,
			(SELECT COUNT(*) FROM likes
				JOIN videos ON likes.target_type = 'video' AND likes.target_id = videos.id
				WHERE videos.owner_id = ? AND videos.deleted_at IS NULL) as total_likes`,
		channelID, channelID, channelID, channelID,
	).Row()

	if err := row.Scan(&stats.TotalViews, &stats.TotalSubscribers, &stats.TotalVideos, &stats.TotalLikes); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}

// GetChannelVideos lists all of the channel's videos, published or not, with
// like and comment counts for the owner's dashboard.
func (r *dashboardRepository) GetChannelVideos(ctx context.Context, channelID uint, params PageParams) (*Page[models.Video], error) {
	params = params.Normalize()

	filtered := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("owner_id = ?", channelID)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var videos []models.Video
	if err := filtered.
		Select("videos.*, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'video' AND likes.target_id = videos.id) as likes_count, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL) as comments_count").
		Order("videos.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(videos, total, params), nil
}
