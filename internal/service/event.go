package service

import (
	"context"
	"fmt"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/repository"
)

// eventService is a guard in front of the event store: it owns no event
// semantics beyond checking the actor with the evaluator and rejecting
// cross-community ids.
type eventService struct {
	eventRepo repository.EventRepository
	authz     AuthzService
}

func NewEventService(eventRepo repository.EventRepository, authz AuthzService) EventService {
	return &eventService{eventRepo: eventRepo, authz: authz}
}

func (s *eventService) CreateEvent(ctx context.Context, communityID, actorID int64, ev *domain.Event) (*domain.Event, error) {
	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionCreateEvent); err != nil {
		return nil, err
	}
	if ev.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", domain.ErrValidation)
	}

	ev.CommunityID = communityID
	ev.CreatorID = actorID
	if err := s.eventRepo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return ev, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, communityID, eventID, actorID int64, ev *domain.Event) (*domain.Event, error) {
	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionEditEvent); err != nil {
		return nil, err
	}

	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if existing.CommunityID != communityID {
		return nil, fmt.Errorf("%w: event %d does not belong to community %d", domain.ErrInvalidArgument, eventID, communityID)
	}

	existing.Title = ev.Title
	existing.Description = ev.Description
	existing.Location = ev.Location
	existing.StartsAt = ev.StartsAt
	existing.EndsAt = ev.EndsAt
	if err := s.eventRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, communityID, eventID, actorID int64) error {
	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionDeleteEvent); err != nil {
		return err
	}

	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if existing.CommunityID != communityID {
		return fmt.Errorf("%w: event %d does not belong to community %d", domain.ErrInvalidArgument, eventID, communityID)
	}

	return s.eventRepo.Delete(ctx, eventID)
}

func (s *eventService) ListEvents(ctx context.Context, communityID, actorID int64) ([]domain.Event, error) {
	if err := s.authz.Require(ctx, actorID, communityID, domain.ActionViewContent); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByCommunity(ctx, communityID)
}
