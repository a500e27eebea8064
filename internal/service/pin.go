package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository"
)

type pinService struct {
	pinRepo repository.PinRepository
	authz   AuthzService
	locker  *CommunityLocker
}

func NewPinService(pinRepo repository.PinRepository, authz AuthzService, locker *CommunityLocker) PinService {
	return &pinService{pinRepo: pinRepo, authz: authz, locker: locker}
}

func (s *pinService) Pin(ctx context.Context, communityID, postID, actorID int64) (*domain.PinnedPost, error) {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionPinPost); err != nil {
		return nil, err
	}

	if _, err := s.pinRepo.Get(ctx, communityID, postID); err == nil {
		return nil, fmt.Errorf("%w: post %d is already pinned", domain.ErrConflict, postID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pin, err := s.pinRepo.Append(ctx, communityID, postID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to pin post: %w", err)
	}
	return pin, nil
}

func (s *pinService) Unpin(ctx context.Context, communityID, postID, actorID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionUnpinPost); err != nil {
		return err
	}
	return s.pinRepo.Remove(ctx, communityID, postID)
}

func (s *pinService) Reorder(ctx context.Context, communityID int64, orderedPostIDs []int64, actorID int64) error {
	unlock := s.locker.Lock(communityID)
	defer unlock()

	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionReorderPins); err != nil {
		return err
	}

	current, err := s.pinRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return err
	}
	if err := validateReorder(current, orderedPostIDs); err != nil {
		return err
	}

	return s.pinRepo.Reorder(ctx, communityID, orderedPostIDs)
}

func (s *pinService) ListPins(ctx context.Context, communityID int64) ([]domain.PinnedPost, error) {
	return s.pinRepo.ListByCommunity(ctx, communityID)
}

// validateReorder checks the proposed order is exactly a permutation of
// the currently pinned set: no additions, no omissions, no duplicates.
func validateReorder(current []domain.PinnedPost, proposed []int64) error {
	if len(proposed) != len(current) {
		return fmt.Errorf("%w: reorder must list all %d pinned posts", domain.ErrInvalidArgument, len(current))
	}

	pinned := make(map[int64]bool, len(current))
	for _, p := range current {
		pinned[p.PostID] = true
	}
	seen := make(map[int64]bool, len(proposed))
	for _, id := range proposed {
		if !pinned[id] {
			return fmt.Errorf("%w: post %d is not pinned", domain.ErrInvalidArgument, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: post %d listed twice", domain.ErrInvalidArgument, id)
		}
		seen[id] = true
	}
	return nil
}
