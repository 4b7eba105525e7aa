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

func TestSubscriptionRepository_Toggle_SelfSubscribe(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewSubscriptionRepository(db)

	_, err := repo.Toggle(context.Background(), 5, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSubscriptionRepository_Toggle_Subscribe(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO subscriptions`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Channel username lookup for cache invalidation.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "username" FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("channel"))

	subscribed, err := repo.Toggle(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Toggle_Unsubscribe(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO subscriptions`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subscriptions"`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "username" FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("channel"))

	subscribed, err := repo.Toggle(ctx, 1, 2)
	assert.NoError(t, err)
	assert.False(t, subscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
