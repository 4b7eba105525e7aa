package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_Toggle_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
		WithArgs(1, models.LikeTargetVideo, 42).
		WillReturnResult(sqlmock.NewResult(1, 1))

	liked, err := repo.Toggle(ctx, 1, models.LikeTargetVideo, 42)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Toggle_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// The conflict-suppressed insert affects no rows, so the existing like
	// gets deleted instead.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
		WithArgs(1, models.LikeTargetComment, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WithArgs(1, models.LikeTargetComment, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.Toggle(ctx, 1, models.LikeTargetComment, 7)
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Toggle_InvalidTarget(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewLikeRepository(db)

	_, err := repo.Toggle(context.Background(), 1, models.LikeTarget("playlist"), 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
