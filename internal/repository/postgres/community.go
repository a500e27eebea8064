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

type communityRepository struct {
	db *sql.DB
}

func NewCommunityRepository(db *sql.DB) repository.CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) CreateWithOwner(ctx context.Context, c *domain.Community) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	c.CreatedAt = time.Now().UTC()
	query := `INSERT INTO communities (owner_id, privacy, name, description, rules, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, c.OwnerID, c.Privacy, c.Name, c.Description, c.Rules, c.CreatedAt).Scan(&c.ID); err != nil {
		return err
	}

	memberQuery := `INSERT INTO memberships (community_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, memberQuery, c.ID, c.OwnerID, domain.RoleOwner, c.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *communityRepository) GetByID(ctx context.Context, id int64) (*domain.Community, error) {
	c := &domain.Community{}
	query := `SELECT id, owner_id, privacy, name, description, rules, created_at FROM communities WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.OwnerID, &c.Privacy, &c.Name, &c.Description, &c.Rules, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("community %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *communityRepository) Update(ctx context.Context, id int64, upd *domain.CommunityUpdate) error {
	query := `UPDATE communities SET
	            name        = COALESCE($1, name),
	            description = COALESCE($2, description),
	            rules       = COALESCE($3, rules),
	            privacy     = COALESCE($4, privacy)
	          WHERE id = $5`
	var privacy *string
	if upd.Privacy != nil {
		p := string(*upd.Privacy)
		privacy = &p
	}
	res, err := r.db.ExecContext(ctx, query, upd.Name, upd.Description, upd.Rules, privacy, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("community %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *communityRepository) List(ctx context.Context) ([]domain.Community, error) {
	query := `SELECT id, owner_id, privacy, name, description, rules, created_at FROM communities ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Community
	for rows.Next() {
		var c domain.Community
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Privacy, &c.Name, &c.Description, &c.Rules, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// TransferOwnership swaps community owner and the two membership roles
// in one transaction. Concurrent readers see either the old owner or
// the new one, never zero or two.
func (r *communityRepository) TransferOwnership(ctx context.Context, communityID, oldOwnerID, newOwnerID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE communities SET owner_id = $1 WHERE id = $2`, newOwnerID, communityID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE memberships SET role = $1 WHERE community_id = $2 AND user_id = $3`,
		domain.RoleMember, communityID, oldOwnerID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE memberships SET role = $1 WHERE community_id = $2 AND user_id = $3`,
		domain.RoleOwner, communityID, newOwnerID); err != nil {
		return err
	}

	return tx.Commit()
}
