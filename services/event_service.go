package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ecotrackAPI/internal/event"
	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
)

type EventService struct {
	events storage.EventStore
	log    *zap.SugaredLogger
}

func NewEventService(events storage.EventStore, log *zap.SugaredLogger) *EventService {
	return &EventService{events: events, log: log}
}

func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]event.Event, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.events.ListUpcoming(ctx, limit)
}

func (s *EventService) Create(ctx context.Context, ident *identity.Identity, req *event.CreateEventRequest) (*event.Event, error) {
	e := &event.Event{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		CreatedBy:   ident.UID,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.events.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
