package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/logger"
	"unihub-backend/internal/repository"
)

// membershipService owns the per-(user, community) state machine:
// OUTSIDER -> REQUESTED -> MEMBER(role) -> OUTSIDER. Every mutating
// transition runs under the community lock so concurrent transitions
// cannot both pass a guard that only one should.
type membershipService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	requestRepo    repository.JoinRequestRepository
	userRepo       repository.UserRepository
	authz          AuthzService
	emailSvc       EmailService
	locker         *CommunityLocker
}

func NewMembershipService(
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	requestRepo repository.JoinRequestRepository,
	userRepo repository.UserRepository,
	authz AuthzService,
	emailSvc EmailService,
	locker *CommunityLocker,
) MembershipService {
	return &membershipService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		authz:          authz,
		emailSvc:       emailSvc,
		locker:         locker,
	}
}

// relationshipOf derives the status from the two tables. It is never
// stored, so membership and join_requests cannot drift from it.
func (s *membershipService) relationshipOf(ctx context.Context, communityID, userID int64) (domain.Relationship, error) {
	member, err := s.membershipRepo.Get(ctx, communityID, userID)
	if err == nil {
		return domain.Relationship{Status: domain.StatusMember, Role: member.Role}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Relationship{}, err
	}

	_, err = s.requestRepo.Get(ctx, communityID, userID)
	if err == nil {
		return domain.Relationship{Status: domain.StatusRequested}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Relationship{}, err
	}

	return domain.Relationship{Status: domain.StatusOutsider}, nil
}

func (s *membershipService) Join(ctx context.Context, communityID, userID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.Privacy != domain.PrivacyPublic {
		return fmt.Errorf("%w: direct join is only valid for public communities", domain.ErrInvalidState)
	}

	rel, err := s.relationshipOf(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if rel.Status != domain.StatusOutsider {
		return fmt.Errorf("%w: cannot join from status %s", domain.ErrInvalidState, rel.Status)
	}

	return s.membershipRepo.Create(ctx, &domain.Membership{
		CommunityID: communityID,
		UserID:      userID,
		Role:        domain.RoleMember,
		JoinedAt:    time.Now().UTC(),
	})
}

func (s *membershipService) RequestJoin(ctx context.Context, communityID, userID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.Privacy != domain.PrivacyPrivate {
		return fmt.Errorf("%w: public communities are joined directly", domain.ErrInvalidState)
	}

	rel, err := s.relationshipOf(ctx, communityID, userID)
	if err != nil {
		return err
	}
	switch rel.Status {
	case domain.StatusRequested:
		return fmt.Errorf("%w: join request already pending", domain.ErrConflict)
	case domain.StatusMember:
		return fmt.Errorf("%w: already a member", domain.ErrInvalidState)
	}

	return s.requestRepo.Create(ctx, &domain.JoinRequest{
		CommunityID: communityID,
		UserID:      userID,
		RequestedAt: time.Now().UTC(),
	})
}

func (s *membershipService) CancelRequest(ctx context.Context, communityID, userID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.requestRepo.Delete(ctx, communityID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: no pending join request to cancel", domain.ErrInvalidState)
		}
		return err
	}
	return nil
}

func (s *membershipService) Approve(ctx context.Context, communityID, requesterID, actorID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionApproveRequest); err != nil {
		return err
	}

	if _, err := s.requestRepo.Get(ctx, communityID, requesterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: no pending join request for user %d", domain.ErrInvalidState, requesterID)
		}
		return err
	}

	if err := s.requestRepo.Approve(ctx, communityID, requesterID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}

	s.notifyDecision(ctx, communityID, requesterID, true)
	return nil
}

func (s *membershipService) Deny(ctx context.Context, communityID, requesterID, actorID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionDenyRequest); err != nil {
		return err
	}

	if err := s.requestRepo.Delete(ctx, communityID, requesterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: no pending join request for user %d", domain.ErrInvalidState, requesterID)
		}
		return err
	}

	s.notifyDecision(ctx, communityID, requesterID, false)
	return nil
}

func (s *membershipService) Leave(ctx context.Context, communityID, userID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	member, err := s.membershipRepo.Get(ctx, communityID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: not a member", domain.ErrInvalidState)
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		return fmt.Errorf("%w: the owner must transfer ownership before leaving", domain.ErrPermissionDenied)
	}

	return s.membershipRepo.Delete(ctx, communityID, userID)
}

func (s *membershipService) SetRole(ctx context.Context, communityID, actorID, targetID int64, role domain.Role) error {
	if !role.Valid() || role == domain.RoleOwner {
		return fmt.Errorf("%w: role must be one of MODERATOR, EVENT_MANAGER, MEMBER", domain.ErrInvalidArgument)
	}

	unlock := s.locker.Lock(communityID)
	defer unlock()

	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner assigns roles", domain.ErrPermissionDenied)
	}
	if targetID == actorID {
		// Demoting the owner goes through ownership transfer, never here.
		return fmt.Errorf("%w: the owner cannot reassign their own role", domain.ErrPermissionDenied)
	}

	if _, err := s.membershipRepo.Get(ctx, communityID, targetID); err != nil {
		return err
	}
	return s.membershipRepo.UpdateRole(ctx, communityID, targetID, role)
}

func (s *membershipService) StatusOf(ctx context.Context, communityID, userID int64) (domain.Relationship, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return domain.Relationship{}, err
	}
	return s.relationshipOf(ctx, communityID, userID)
}

func (s *membershipService) ListMembers(ctx context.Context, communityID int64) ([]domain.Membership, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListByCommunity(ctx, communityID)
}

func (s *membershipService) ListRequests(ctx context.Context, communityID, actorID int64) ([]domain.JoinRequest, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the owner lists join requests", domain.ErrPermissionDenied)
	}
	return s.requestRepo.ListByCommunity(ctx, communityID)
}

// notifyDecision emails the requester about the outcome. Best effort;
// the state transition has already committed.
func (s *membershipService) notifyDecision(ctx context.Context, communityID, requesterID int64, approved bool) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		logger.WarnContext(ctx, "skipping decision notification", "community_id", communityID, "error", err)
		return
	}
	user, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		logger.WarnContext(ctx, "skipping decision notification", "user_id", requesterID, "error", err)
		return
	}

	if approved {
		err = s.emailSvc.SendJoinApproved(ctx, user.Email, user.DisplayName, community.Name)
	} else {
		err = s.emailSvc.SendJoinDenied(ctx, user.Email, user.DisplayName, community.Name)
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to send decision notification", "user_id", requesterID, "error", err)
	}
}
