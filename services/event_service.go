package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
)

type CreateEventInput struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

type UpdateEventInput struct {
	Name *string `json:"name"`
	Date *string `json:"date"`
	Time *string `json:"time"`
}

type EventService interface {
	Create(ctx context.Context, input CreateEventInput, creatorUserID int) (*models.Event, error)
	GetByID(ctx context.Context, id int) (*models.Event, error)
	ListActive(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error)
	Deactivate(ctx context.Context, id int) error

	AddOrganizer(ctx context.Context, eventID, userID int) (*models.EventOrganizer, error)
	ListOrganizers(ctx context.Context, eventID int) ([]*models.EventOrganizer, error)
	RemoveOrganizer(ctx context.Context, eventID, userID int) error
	IsOrganizer(ctx context.Context, eventID, userID int) (bool, error)
}

type eventService struct {
	eventRepo     repositories.EventRepository
	organizerRepo repositories.OrganizerRepository
	userRepo      repositories.UserRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	organizerRepo repositories.OrganizerRepository,
	userRepo repositories.UserRepository,
) EventService {
	return &eventService{
		eventRepo:     eventRepo,
		organizerRepo: organizerRepo,
		userRepo:      userRepo,
	}
}

func validateEventFields(name, date, timeOfDay string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEventNameRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrEventDateInvalid
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return ErrEventTimeInvalid
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, input CreateEventInput, creatorUserID int) (*models.Event, error) {
	if input.Time == "" {
		input.Time = "19:00"
	}
	if err := validateEventFields(input.Name, input.Date, input.Time); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:   strings.TrimSpace(input.Name),
		Date:   input.Date,
		Time:   input.Time,
		Active: true,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// The creating user becomes the event's first organizer.
	organizer := &models.EventOrganizer{
		EventID: event.ID,
		UserID:  creatorUserID,
		Creator: true,
	}
	if err := s.organizerRepo.Add(ctx, organizer); err != nil {
		return nil, fmt.Errorf("failed to register event creator as organizer: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return event, nil
}

func (s *eventService) ListActive(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		event.Name = strings.TrimSpace(*input.Name)
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Time != nil {
		event.Time = *input.Time
	}
	if err := validateEventFields(event.Name, event.Date, event.Time); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	return event, nil
}

func (s *eventService) Deactivate(ctx context.Context, id int) error {
	if err := s.eventRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to deactivate event %d: %w", id, err)
	}
	return nil
}

func (s *eventService) AddOrganizer(ctx context.Context, eventID, userID int) (*models.EventOrganizer, error) {
	if _, err := s.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	organizer := &models.EventOrganizer{EventID: eventID, UserID: userID}
	if err := s.organizerRepo.Add(ctx, organizer); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrganizerConflict):
			return nil, ErrOrganizerConflict
		case errors.Is(err, repositories.ErrOrganizerEventInvalid):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrOrganizerUserInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to add organizer to event %d: %w", eventID, err)
	}
	return organizer, nil
}

func (s *eventService) ListOrganizers(ctx context.Context, eventID int) ([]*models.EventOrganizer, error) {
	if _, err := s.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	organizers, err := s.organizerRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizers for event %d: %w", eventID, err)
	}
	return organizers, nil
}

func (s *eventService) RemoveOrganizer(ctx context.Context, eventID, userID int) error {
	if err := s.organizerRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, repositories.ErrOrganizerNotFound) {
			return ErrOrganizerNotFound
		}
		return fmt.Errorf("failed to remove organizer from event %d: %w", eventID, err)
	}
	return nil
}

func (s *eventService) IsOrganizer(ctx context.Context, eventID, userID int) (bool, error) {
	return s.organizerRepo.IsOrganizer(ctx, eventID, userID)
}
