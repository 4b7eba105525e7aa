package repository

import (
	"context"

	"github.com/SumiranBhawsar/youtube-clone/internal/cache"
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions.
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error)
	ListSubscribers(ctx context.Context, channelID uint, params PageParams) (*Page[models.User], error)
	ListSubscribedChannels(ctx context.Context, subscriberID uint, params PageParams) (*Page[models.User], error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle subscribes the user to the channel, or unsubscribes if already
// subscribed. Returns true when the call resulted in a subscription.
// Self-subscription is rejected.
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	if subscriberID == channelID {
		return false, models.NewValidationError("cannot subscribe to your own channel")
	}

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}

	subscribed := result.RowsAffected > 0
	if !subscribed {
		if err := r.db.WithContext(ctx).
			Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&models.Subscription{}).Error; err != nil {
			return false, models.NewInternalError(err)
		}
	}

	var channel models.User
	if err := r.db.WithContext(ctx).Select("username").First(&channel, channelID).Error; err == nil {
		cache.InvalidateChannel(ctx, channel.Username)
	}
	return subscribed, nil
}

// ListSubscribers returns the users subscribed to a channel, newest first.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, params PageParams) (*Page[models.User], error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var users []models.User
	if err := base.
		Order("subscriptions.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(users, total, params), nil
}

// ListSubscribedChannels returns the channels a user subscribes to, newest
// subscription first.
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uint, params PageParams) (*Page[models.User], error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var users []models.User
	if err := base.
		Order("subscriptions.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(users, total, params), nil
}
