package service

import (
	"context"

	"unihub-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, displayName, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, string, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type CommunityService interface {
	CreateCommunity(ctx context.Context, ownerID int64, name, description, rules string, privacy domain.Privacy) (*domain.Community, error)
	GetCommunity(ctx context.Context, id int64) (*domain.Community, error)
	UpdateCommunity(ctx context.Context, communityID, actorID int64, upd *domain.CommunityUpdate) (*domain.Community, error)
	ListCommunities(ctx context.Context) ([]domain.Community, error)
	TransferOwnership(ctx context.Context, communityID, actorID, newOwnerID int64) error
}

type MembershipService interface {
	Join(ctx context.Context, communityID, userID int64) error
	RequestJoin(ctx context.Context, communityID, userID int64) error
	CancelRequest(ctx context.Context, communityID, userID int64) error
	Approve(ctx context.Context, communityID, requesterID, actorID int64) error
	Deny(ctx context.Context, communityID, requesterID, actorID int64) error
	Leave(ctx context.Context, communityID, userID int64) error
	SetRole(ctx context.Context, communityID, actorID, targetID int64, role domain.Role) error
	StatusOf(ctx context.Context, communityID, userID int64) (domain.Relationship, error)
	ListMembers(ctx context.Context, communityID int64) ([]domain.Membership, error)
	ListRequests(ctx context.Context, communityID, actorID int64) ([]domain.JoinRequest, error)
}

// AuthzService is the single choke point for community-scoped
// permission decisions. No service replicates its checks inline.
type AuthzService interface {
	// Can reports whether the actor may perform the action. A false
	// result is not an error; callers that need to fail use Require.
	Can(ctx context.Context, actorID, communityID int64, action domain.Action) (bool, error)

	// Require returns ErrPermissionDenied (wrapped) when Can is false,
	// and records the denial as an audit event.
	Require(ctx context.Context, actorID, communityID int64, action domain.Action) error
}

type PinService interface {
	Pin(ctx context.Context, communityID, postID, actorID int64) (*domain.PinnedPost, error)
	Unpin(ctx context.Context, communityID, postID, actorID int64) error
	Reorder(ctx context.Context, communityID int64, orderedPostIDs []int64, actorID int64) error
	ListPins(ctx context.Context, communityID int64) ([]domain.PinnedPost, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, communityID, actorID int64, ev *domain.Event) (*domain.Event, error)
	UpdateEvent(ctx context.Context, communityID, eventID, actorID int64, ev *domain.Event) (*domain.Event, error)
	DeleteEvent(ctx context.Context, communityID, eventID, actorID int64) error
	ListEvents(ctx context.Context, communityID, actorID int64) ([]domain.Event, error)
}

type EmailService interface {
	SendJoinApproved(ctx context.Context, email, name, communityName string) error
	SendJoinDenied(ctx context.Context, email, name, communityName string) error
	SendOwnershipTransferred(ctx context.Context, email, name, communityName string) error
	SendPendingRequestReminder(ctx context.Context, email, name, communityName string, pending int) error
}
