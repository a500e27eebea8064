package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository"
)

type joinRequestRepository struct {
	db *sql.DB
}

func NewJoinRequestRepository(db *sql.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `INSERT INTO join_requests (community_id, user_id, requested_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, req.CommunityID, req.UserID, req.RequestedAt)
	return err
}

func (r *joinRequestRepository) Get(ctx context.Context, communityID, userID int64) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT community_id, user_id, requested_at FROM join_requests WHERE community_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, communityID, userID).Scan(&req.CommunityID, &req.UserID, &req.RequestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("join request: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *joinRequestRepository) Delete(ctx context.Context, communityID, userID int64) error {
	query := `DELETE FROM join_requests WHERE community_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, communityID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("join request: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *joinRequestRepository) ListByCommunity(ctx context.Context, communityID int64) ([]domain.JoinRequest, error) {
	query := `SELECT community_id, user_id, requested_at FROM join_requests WHERE community_id = $1 ORDER BY requested_at`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoinRequests(rows)
}

// Approve removes the pending request and inserts the Member-role
// membership in one transaction, so no reader can ever observe both a
// request and a membership for the pair.
func (r *joinRequestRepository) Approve(ctx context.Context, communityID, userID int64, joinedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM join_requests WHERE community_id = $1 AND user_id = $2`, communityID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("join request: %w", domain.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO memberships (community_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
		communityID, userID, domain.RoleMember, joinedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *joinRequestRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.JoinRequest, error) {
	query := `SELECT community_id, user_id, requested_at FROM join_requests WHERE requested_at < $1 ORDER BY community_id, requested_at`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoinRequests(rows)
}

func scanJoinRequests(rows *sql.Rows) ([]domain.JoinRequest, error) {
	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := rows.Scan(&req.CommunityID, &req.UserID, &req.RequestedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
