package repository

import (
	"context"
	"testing"

	"musicapp/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusicianDeleteCascades(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormMusicianRepository(gdb)

	// One transaction removes tracks, albums and the musician, in that order.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `tracks` WHERE album_id IN").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `albums` WHERE musician_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `musicians`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMusicianDeleteRollsBackOnFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormMusicianRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `tracks` WHERE album_id IN").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMusicianUpdateConflict(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormMusicianRepository(gdb)

	mock.ExpectExec("UPDATE `musicians` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	musician := &model.Musician{ID: 1, Name: "Miles Davis", Genre: "Jazz", Version: 2}
	err := repo.Update(context.Background(), musician)
	assert.ErrorIs(t, err, ErrConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumDeleteCascades(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormAlbumRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `tracks` WHERE album_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `albums`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActionLogCreate(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormActionLogRepository(gdb)

	mock.ExpectExec("INSERT INTO `user_action_logs`").
		WillReturnResult(sqlmock.NewResult(5, 1))

	entry := &model.UserActionLog{
		UserID:     "203.0.113.7",
		ActionType: "Rate",
		EntityType: "Track",
		EntityID:   1,
		Details:    "Rating: Like",
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(5), entry.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
