package service

import (
	"context"
	"errors"
	"fmt"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/logger"
	"unihub-backend/internal/repository"
)

type communityService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	authz          AuthzService
	emailSvc       EmailService
	locker         *CommunityLocker
}

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	authz AuthzService,
	emailSvc EmailService,
	locker *CommunityLocker,
) CommunityService {
	return &communityService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		authz:          authz,
		emailSvc:       emailSvc,
		locker:         locker,
	}
}

func (s *communityService) CreateCommunity(ctx context.Context, ownerID int64, name, description, rules string, privacy domain.Privacy) (*domain.Community, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: community name is required", domain.ErrValidation)
	}
	if privacy == "" {
		privacy = domain.PrivacyPublic
	}
	if !privacy.Valid() {
		return nil, fmt.Errorf("%w: privacy must be PUBLIC or PRIVATE", domain.ErrValidation)
	}

	community := &domain.Community{
		OwnerID:     ownerID,
		Privacy:     privacy,
		Name:        name,
		Description: description,
		Rules:       rules,
	}
	if err := s.communityRepo.CreateWithOwner(ctx, community); err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}
	return community, nil
}

func (s *communityService) GetCommunity(ctx context.Context, id int64) (*domain.Community, error) {
	return s.communityRepo.GetByID(ctx, id)
}

func (s *communityService) ListCommunities(ctx context.Context) ([]domain.Community, error) {
	return s.communityRepo.List(ctx)
}

func (s *communityService) UpdateCommunity(ctx context.Context, communityID, actorID int64, upd *domain.CommunityUpdate) (*domain.Community, error) {
	if upd.Name != nil && *upd.Name == "" {
		return nil, fmt.Errorf("%w: community name cannot be empty", domain.ErrValidation)
	}
	if upd.Privacy != nil && !upd.Privacy.Valid() {
		return nil, fmt.Errorf("%w: privacy must be PUBLIC or PRIVATE", domain.ErrValidation)
	}

	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionEditCommunity); err != nil {
		return nil, err
	}
	if err := s.communityRepo.Update(ctx, communityID, upd); err != nil {
		return nil, err
	}
	return s.communityRepo.GetByID(ctx, communityID)
}

func (s *communityService) TransferOwnership(ctx context.Context, communityID, actorID, newOwnerID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionTransferOwnership); err != nil {
		return err
	}
	if newOwnerID == actorID {
		return fmt.Errorf("%w: cannot transfer ownership to the current owner", domain.ErrInvalidArgument)
	}

	if _, err := s.membershipRepo.Get(ctx, communityID, newOwnerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: new owner must already be a member", domain.ErrInvalidArgument)
		}
		return err
	}

	if err := s.communityRepo.TransferOwnership(ctx, communityID, actorID, newOwnerID); err != nil {
		return fmt.Errorf("failed to transfer ownership: %w", err)
	}

	s.notifyNewOwner(ctx, communityID, newOwnerID)
	return nil
}

// notifyNewOwner is best effort; a failed email never unwinds the
// committed transfer.
func (s *communityService) notifyNewOwner(ctx context.Context, communityID, newOwnerID int64) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		logger.WarnContext(ctx, "skipping transfer notification", "community_id", communityID, "error", err)
		return
	}
	user, err := s.userRepo.GetByID(ctx, newOwnerID)
	if err != nil {
		logger.WarnContext(ctx, "skipping transfer notification", "user_id", newOwnerID, "error", err)
		return
	}
	if err := s.emailSvc.SendOwnershipTransferred(ctx, user.Email, user.DisplayName, community.Name); err != nil {
		logger.WarnContext(ctx, "failed to send transfer notification", "user_id", newOwnerID, "error", err)
	}
}
