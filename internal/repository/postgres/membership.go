package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (community_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, m.CommunityID, m.UserID, m.Role, m.JoinedAt)
	return err
}

func (r *membershipRepository) Get(ctx context.Context, communityID, userID int64) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT community_id, user_id, role, joined_at FROM memberships WHERE community_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, communityID, userID).Scan(&m.CommunityID, &m.UserID, &m.Role, &m.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) Delete(ctx context.Context, communityID, userID int64) error {
	query := `DELETE FROM memberships WHERE community_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, communityID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, communityID, userID int64, role domain.Role) error {
	query := `UPDATE memberships SET role = $1 WHERE community_id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, role, communityID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *membershipRepository) ListByCommunity(ctx context.Context, communityID int64) ([]domain.Membership, error) {
	query := `SELECT community_id, user_id, role, joined_at FROM memberships WHERE community_id = $1 ORDER BY joined_at, user_id`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.CommunityID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
