package repository

import (
	"context"
	"errors"

	"github.com/SumiranBhawsar/youtube-clone/internal/cache"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	ListByUser(ctx context.Context, ownerID uint) ([]models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint) error
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uint) error
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a new PlaylistRepository implementation.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// Create inserts a playlist. Names are unique per owner, compared
// case-insensitively.
func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", playlist.OwnerID, playlist.Name).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count > 0 {
		return models.NewConflictError("a playlist with this name already exists")
	}

	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads a playlist with its member videos in insertion order and the
// computed totals.
func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist

	err := cache.Aside(ctx, cache.PlaylistKey(id), &playlist, cache.PlaylistTTL, func() error {
		if err := r.applyPlaylistDetails(r.db.WithContext(ctx)).
			Preload("Videos", func(db *gorm.DB) *gorm.DB {
				return db.Joins("JOIN playlist_videos pv ON pv.video_id = videos.id").
					Order("pv.position ASC")
			}).
			Preload("Videos.Owner").
			First(&playlist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Playlist", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByUser returns a user's playlists with the computed totals but without
// member videos.
func (r *playlistRepository) ListByUser(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := r.applyPlaylistDetails(r.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("playlists.created_at DESC").
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

// applyPlaylistDetails adds subqueries to fetch the video count, summed
// views, and the first video's thumbnail in a single query.
func (r *playlistRepository) applyPlaylistDetails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Playlist{}).Select("playlists.*, " +
		"(SELECT COUNT(*) FROM playlist_videos WHERE playlist_videos.playlist_id = playlists.id) as total_videos, " +
		"(SELECT COALESCE(SUM(videos.views), 0) FROM playlist_videos JOIN videos ON videos.id = playlist_videos.video_id WHERE playlist_videos.playlist_id = playlists.id) as total_views, " +
		"(SELECT videos.thumbnail FROM playlist_videos JOIN videos ON videos.id = playlist_videos.video_id WHERE playlist_videos.playlist_id = playlists.id ORDER BY playlist_videos.position ASC LIMIT 1) as first_video_thumbnail")
}

// AddVideo appends a video to the playlist. Re-adding an existing member is a
// no-op rather than an error.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO playlist_videos (playlist_id, video_id, position, created_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_videos WHERE playlist_id = ?), NOW())
		 ON CONFLICT (playlist_id, video_id) DO NOTHING`,
		playlistID, videoID, playlistID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlaylist(ctx, playlistID)
	return nil
}

// RemoveVideo detaches a video from the playlist. Removing a non-member is a
// no-op.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	if err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlaylist(ctx, playlistID)
	return nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("owner_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", playlist.OwnerID, playlist.Name, playlist.ID).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count > 0 {
		return models.NewConflictError("a playlist with this name already exists")
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Where("id = ?", playlist.ID).
		Updates(map[string]any{
			"name":        playlist.Name,
			"description": playlist.Description,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlaylist(ctx, playlist.ID)
	return nil
}

// Delete removes a playlist and its membership rows in one transaction.
func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlaylist(ctx, id)
	return nil
}
