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

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, ev *domain.Event) error {
	query := `INSERT INTO events (community_id, creator_id, title, description, location, starts_at, ends_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	ev.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, ev.CommunityID, ev.CreatorID, ev.Title, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.CreatedAt).Scan(&ev.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	ev := &domain.Event{}
	query := `SELECT id, community_id, creator_id, title, description, location, starts_at, ends_at, created_at FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ev.ID, &ev.CommunityID, &ev.CreatorID, &ev.Title, &ev.Description, &ev.Location, &ev.StartsAt, &ev.EndsAt, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) Update(ctx context.Context, ev *domain.Event) error {
	query := `UPDATE events SET title = $1, description = $2, location = $3, starts_at = $4, ends_at = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, ev.Title, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("event %d: %w", ev.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) ListByCommunity(ctx context.Context, communityID int64) ([]domain.Event, error) {
	query := `SELECT id, community_id, creator_id, title, description, location, starts_at, ends_at, created_at
	          FROM events WHERE community_id = $1 ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(&ev.ID, &ev.CommunityID, &ev.CreatorID, &ev.Title, &ev.Description, &ev.Location, &ev.StartsAt, &ev.EndsAt, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
