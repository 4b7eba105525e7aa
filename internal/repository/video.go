package repository

import (
	"context"
	"errors"

	"github.com/SumiranBhawsar/youtube-clone/internal/cache"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// VideoListOptions narrows and orders a video listing.
type VideoListOptions struct {
	Query    string
	OwnerID  uint
	SortBy   string
	SortType string
	// IncludeUnpublished lifts the published-only filter, used when an owner
	// lists their own videos.
	IncludeUnpublished bool
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error)
	List(ctx context.Context, opts VideoListOptions, params PageParams, currentUserID uint) (*Page[models.Video], error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	TogglePublish(ctx context.Context, id uint) (*models.Video, error)
	IncrementViews(ctx context.Context, id uint) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error) {
	var video models.Video

	fetch := func() error {
		if err := r.applyVideoDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Owner").
			First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Video", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.VideoKey(id), &video, cache.VideoTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, opts VideoListOptions, params PageParams, currentUserID uint) (*Page[models.Video], error) {
	params = params.Normalize()

	filtered := r.db.WithContext(ctx).Model(&models.Video{})
	if !opts.IncludeUnpublished {
		filtered = filtered.Where("is_published = ?", true)
	}
	if opts.OwnerID != 0 {
		filtered = filtered.Where("owner_id = ?", opts.OwnerID)
	}
	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		filtered = filtered.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var videos []models.Video
	if err := r.applySort(r.applyVideoDetails(filtered, currentUserID), opts.SortBy, opts.SortType).
		Preload("Owner").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(videos, total, params), nil
}

// applySort appends the ORDER BY clause for the requested sort field. Only
// whitelisted columns are accepted; anything else falls back to newest-first.
func (r *videoRepository) applySort(db *gorm.DB, sortBy, sortType string) *gorm.DB {
	direction := "DESC"
	if sortType == "asc" {
		direction = "ASC"
	}
	switch sortBy {
	case "views":
		return db.Order("views " + direction + ", videos.created_at DESC")
	case "duration":
		return db.Order("duration " + direction + ", videos.created_at DESC")
	case "title":
		return db.Order("title " + direction + ", videos.created_at DESC")
	case "created_at", "createdAt":
		return db.Order("videos.created_at " + direction)
	default:
		return db.Order("videos.created_at DESC")
	}
}

// applyVideoDetails adds subqueries to fetch counts and the viewer's
// like/subscription status in a single query.
func (r *videoRepository) applyVideoDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "videos.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'video' AND likes.target_id = videos.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.channel_id = videos.owner_id) as subscribers_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'video' AND likes.target_id = videos.id AND likes.liked_by_id = ?) as is_liked"+
			", EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.channel_id = videos.owner_id AND subscriptions.subscriber_id = ?) as is_subscribed",
			currentUserID, currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked, false as is_subscribed")
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

// Delete removes a video and everything hanging off it in one transaction:
// likes on the video, likes on its comments, the comments themselves,
// playlist memberships, and watch history.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM likes WHERE target_type = 'video' AND target_id = ?`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM likes WHERE target_type = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.WatchHistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

// TogglePublish flips the publish flag and returns the updated video.
func (r *videoRepository) TogglePublish(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, models.NewInternalError(err)
	}

	newState := !video.IsPublished
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Update("is_published", newState).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	video.IsPublished = newState
	cache.InvalidateVideo(ctx, id)
	return &video, nil
}

// IncrementViews bumps the view counter atomically. The cached detail entry
// is left in place; a stale view count for the cache TTL is acceptable, and
// evicting here would defeat the anonymous read cache entirely.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
