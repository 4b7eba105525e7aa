package repository

import (
	"context"
	"errors"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	ListByUser(ctx context.Context, ownerID uint, params PageParams, currentUserID uint) (*Page[models.Tweet], error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByUser(ctx context.Context, ownerID uint, params PageParams, currentUserID uint) (*Page[models.Tweet], error) {
	params = params.Normalize()

	filtered := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var tweets []models.Tweet
	if err := r.applyTweetDetails(filtered, currentUserID).
		Preload("Owner").
		Order("tweets.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(tweets, total, params), nil
}

// applyTweetDetails adds subqueries to fetch the like count and the viewer's
// like status in a single query.
func (r *tweetRepository) applyTweetDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'tweet' AND likes.target_id = tweets.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'tweet' AND likes.target_id = tweets.id AND likes.liked_by_id = ?) as is_liked",
			currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked")
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a tweet and its likes in one transaction.
func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM likes WHERE target_type = 'tweet' AND target_id = ?`, id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
