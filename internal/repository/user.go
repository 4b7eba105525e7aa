package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/cache"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and their channel
// read-model.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, userID uint, token string) error
	GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.User, error)
	AddWatchHistory(ctx context.Context, userID, videoID uint) error
	GetWatchHistory(ctx context.Context, userID uint, params PageParams) (*Page[models.Video], error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("username or email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmailOrUsername resolves login identifiers; either field may match.
func (r *userRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", identifier, identifier).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("username or email already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateChannel(ctx, user.Username)
	return nil
}

// UpdateRefreshToken replaces the single active refresh token on the user
// row. An empty token clears it (logout).
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID uint, token string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetChannelProfile loads a user by username together with subscriber counts
// and whether the requesting user subscribes to the channel, all in one query.
func (r *userRepository) GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	var user models.User

	fetch := func() error {
		if err := r.applyChannelDetails(r.db.WithContext(ctx), currentUserID).
			Where("username = ?", username).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Channel", username)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ChannelKey(username), &user, cache.ChannelTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// applyChannelDetails adds subqueries to fetch subscription counts and the
// viewer's subscription status in a single query.
func (r *userRepository) applyChannelDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "users.*, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.channel_id = users.id) as subscribers_count, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.subscriber_id = users.id) as channels_subscribed_to"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.channel_id = users.id AND subscriptions.subscriber_id = ?) as is_subscribed", currentUserID)
	}
	return db.Select(selectQuery + ", false as is_subscribed")
}

// AddWatchHistory records a view in the user's history. Re-watching bumps the
// timestamp instead of inserting a duplicate row.
func (r *userRepository) AddWatchHistory(ctx context.Context, userID, videoID uint) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO watch_history_entries (user_id, video_id, watched_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()`,
		userID, videoID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetWatchHistory returns the user's watched videos, most recent first.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID uint, params PageParams) (*Page[models.Video], error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN watch_history_entries ON watch_history_entries.video_id = videos.id").
		Where("watch_history_entries.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var videos []models.Video
	if err := base.
		Preload("Owner").
		Order("watch_history_entries.watched_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(videos, total, params), nil
}
