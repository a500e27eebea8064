package repository

import (
	"context"
	"time"

	"unihub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CommunityRepository interface {
	// CreateWithOwner inserts the community and the creator's Owner
	// membership in one transaction.
	CreateWithOwner(ctx context.Context, c *domain.Community) error
	GetByID(ctx context.Context, id int64) (*domain.Community, error)
	Update(ctx context.Context, id int64, upd *domain.CommunityUpdate) error
	List(ctx context.Context) ([]domain.Community, error)

	// TransferOwnership atomically points owner_id at newOwnerID,
	// demotes the old owner's membership to MEMBER and promotes the new
	// owner's membership to OWNER. No intermediate state is visible.
	TransferOwnership(ctx context.Context, communityID, oldOwnerID, newOwnerID int64) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, communityID, userID int64) (*domain.Membership, error)
	Delete(ctx context.Context, communityID, userID int64) error
	UpdateRole(ctx context.Context, communityID, userID int64, role domain.Role) error
	ListByCommunity(ctx context.Context, communityID int64) ([]domain.Membership, error)
}

type JoinRequestRepository interface {
	Create(ctx context.Context, req *domain.JoinRequest) error
	Get(ctx context.Context, communityID, userID int64) (*domain.JoinRequest, error)
	Delete(ctx context.Context, communityID, userID int64) error
	ListByCommunity(ctx context.Context, communityID int64) ([]domain.JoinRequest, error)

	// Approve deletes the request and inserts the membership in one
	// transaction so the at-most-one-of invariant holds at every point.
	Approve(ctx context.Context, communityID, userID int64, joinedAt time.Time) error

	// ListStale returns pending requests older than the cutoff, across
	// all communities, for the reminder job.
	ListStale(ctx context.Context, olderThan time.Time) ([]domain.JoinRequest, error)
}

type PinRepository interface {
	Get(ctx context.Context, communityID, postID int64) (*domain.PinnedPost, error)

	// Append pins the post at position = current count of pins for the
	// community, inside one transaction.
	Append(ctx context.Context, communityID, postID int64, pinnedAt time.Time) (*domain.PinnedPost, error)

	// Remove deletes the pin and decrements every higher position in
	// the same transaction, keeping positions dense.
	Remove(ctx context.Context, communityID, postID int64) error

	// Reorder assigns positions by index of orderedPostIDs. Callers
	// must have validated the set against ListByCommunity first.
	Reorder(ctx context.Context, communityID int64, orderedPostIDs []int64) error

	ListByCommunity(ctx context.Context, communityID int64) ([]domain.PinnedPost, error)
}

// EventRepository is the boundary to the external event store. The
// access engine only calls it after the evaluator has cleared the actor.
type EventRepository interface {
	Create(ctx context.Context, ev *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Update(ctx context.Context, ev *domain.Event) error
	Delete(ctx context.Context, id int64) error
	ListByCommunity(ctx context.Context, communityID int64) ([]domain.Event, error)
}
