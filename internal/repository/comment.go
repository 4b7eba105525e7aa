package repository

import (
	"context"
	"errors"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uint, params PageParams, currentUserID uint) (*Page[models.Comment], error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, params PageParams, currentUserID uint) (*Page[models.Comment], error) {
	params = params.Normalize()

	filtered := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("video_id = ?", videoID)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var comments []models.Comment
	if err := r.applyCommentDetails(filtered, currentUserID).
		Preload("Owner").
		Order("comments.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return NewPage(comments, total, params), nil
}

// applyCommentDetails adds subqueries to fetch the like count and the
// viewer's like status in a single query.
func (r *commentRepository) applyCommentDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "comments.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.target_type = 'comment' AND likes.target_id = comments.id AND likes.liked_by_id = ?) as is_liked",
			currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked")
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a comment and its likes in one transaction.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM likes WHERE target_type = 'comment' AND target_id = ?`, id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
