package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Nice video!", VideoID: 1, OwnerID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByVideo(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "owner_id", "likes_count", "is_liked"}).
			AddRow(1, "Comment 1", 101, 3, true).
			AddRow(2, "Comment 2", 102, 0, false))

	// Preload Owner for each comment
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "user101").
			AddRow(102, "user102"))

	page, err := repo.ListByVideo(ctx, 1, PageParams{Page: 1, Limit: 10}, 7)
	assert.NoError(t, err)
	assert.Len(t, page.Docs, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, "Comment 1", page.Docs[0].Content)
	assert.Equal(t, 3, page.Docs[0].LikesCount)
	assert.True(t, page.Docs[0].IsLiked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_RemovesLikes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM likes WHERE target_type = 'comment' AND target_id = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
