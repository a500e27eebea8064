package postgres_test

import (
	"context"
	"testing"
	"time"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestJoinRequestRepository_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()
	joinedAt := time.Now().UTC()

	t.Run("Deletes Request And Inserts Membership Atomically", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM join_requests").
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO memberships").
			WithArgs(int64(1), int64(7), domain.RoleMember, joinedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, 1, 7, joinedAt)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Request Maps To Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM join_requests").
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Approve(ctx, 1, 7, joinedAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls Back When Membership Insert Fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM join_requests").
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO memberships").
			WithArgs(int64(1), int64(7), domain.RoleMember, joinedAt).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Approve(ctx, 1, 7, joinedAt)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJoinRequestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()

	t.Run("Missing Request Maps To Not Found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM join_requests").
			WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestJoinRequestRepository_ListStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()
	cutoff := time.Now().Add(-48 * time.Hour)

	t.Run("Returns Requests Older Than Cutoff", func(t *testing.T) {
		requestedAt := cutoff.Add(-time.Hour)
		mock.ExpectQuery("SELECT community_id, user_id, requested_at FROM join_requests").
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"community_id", "user_id", "requested_at"}).
				AddRow(int64(1), int64(7), requestedAt).
				AddRow(int64(2), int64(8), requestedAt))

		reqs, err := repo.ListStale(ctx, cutoff)
		assert.NoError(t, err)
		assert.Len(t, reqs, 2)
		assert.Equal(t, int64(7), reqs[0].UserID)
	})
}
