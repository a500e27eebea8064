package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository"

	"github.com/lib/pq"
)

type pinRepository struct {
	db *sql.DB
}

func NewPinRepository(db *sql.DB) repository.PinRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) Get(ctx context.Context, communityID, postID int64) (*domain.PinnedPost, error) {
	p := &domain.PinnedPost{}
	query := `SELECT community_id, post_id, position, pinned_at FROM pinned_posts WHERE community_id = $1 AND post_id = $2`
	err := r.db.QueryRowContext(ctx, query, communityID, postID).Scan(&p.CommunityID, &p.PostID, &p.Position, &p.PinnedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pin: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pinRepository) Append(ctx context.Context, communityID, postID int64, pinnedAt time.Time) (*domain.PinnedPost, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pinned_posts WHERE community_id = $1`, communityID).Scan(&count); err != nil {
		return nil, err
	}

	p := &domain.PinnedPost{
		CommunityID: communityID,
		PostID:      postID,
		Position:    count,
		PinnedAt:    pinnedAt,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pinned_posts (community_id, post_id, position, pinned_at) VALUES ($1, $2, $3, $4)`,
		p.CommunityID, p.PostID, p.Position, p.PinnedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes the pin and closes the positional gap in the same
// transaction. Positions stay exactly 0..n-1 at every commit point.
func (r *pinRepository) Remove(ctx context.Context, communityID, postID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var removed int
	err = tx.QueryRowContext(ctx,
		`DELETE FROM pinned_posts WHERE community_id = $1 AND post_id = $2 RETURNING position`,
		communityID, postID).Scan(&removed)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("pin: %w", domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	// Two-phase decrement, same as Reorder: UNIQUE(community_id, position)
	// is checked per row in heap order, so an in-place position - 1 can
	// land on a slot whose occupant has not moved yet. Park the affected
	// rows on negative positions first, then land each one slot down.
	if _, err := tx.ExecContext(ctx,
		`UPDATE pinned_posts SET position = -position WHERE community_id = $1 AND position > $2`,
		communityID, removed); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE pinned_posts SET position = -position - 1 WHERE community_id = $1 AND position < 0`,
		communityID); err != nil {
		return err
	}

	return tx.Commit()
}

// Reorder assigns positions by list index. The two-phase update shifts
// positions out of range first so the per-community UNIQUE(position)
// constraint never trips mid-transaction.
func (r *pinRepository) Reorder(ctx context.Context, communityID int64, orderedPostIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE pinned_posts SET position = position + $1 WHERE community_id = $2`,
		len(orderedPostIDs), communityID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE pinned_posts AS p SET position = o.ord - 1
		 FROM unnest($1::bigint[]) WITH ORDINALITY AS o(post_id, ord)
		 WHERE p.community_id = $2 AND p.post_id = o.post_id`,
		pq.Array(orderedPostIDs), communityID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *pinRepository) ListByCommunity(ctx context.Context, communityID int64) ([]domain.PinnedPost, error) {
	query := `SELECT community_id, post_id, position, pinned_at FROM pinned_posts WHERE community_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []domain.PinnedPost
	for rows.Next() {
		var p domain.PinnedPost
		if err := rows.Scan(&p.CommunityID, &p.PostID, &p.Position, &p.PinnedAt); err != nil {
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, rows.Err()
}
