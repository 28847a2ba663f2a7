package services

import (
	"context"
	"errors"
	"fmt"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const integrityPageSize = 500

// IntegrityReport lists records whose references point at deleted records
type IntegrityReport struct {
	OrphanEvents        []string `json:"orphanEvents"`
	OrphanMedia         []string `json:"orphanMedia"`
	OrphanNotifications []string `json:"orphanNotifications"`
	Applied             bool     `json:"applied"`
}

// Total is the number of orphaned records found
func (r *IntegrityReport) Total() int {
	return len(r.OrphanEvents) + len(r.OrphanMedia) + len(r.OrphanNotifications)
}

// IntegrityService finds records left behind by deletes. Deletes never
// cascade; this pass is run on demand.
type IntegrityService struct {
	store *repository.Store
}

// NewIntegrityService creates a new integrity service
func NewIntegrityService(store *repository.Store) *IntegrityService {
	return &IntegrityService{store: store}
}

// Check reports orphans: events whose author is gone, media whose event is
// gone (or is itself an orphan) and notifications whose recipient or sender
// is gone. With apply set the orphans are deleted.
func (s *IntegrityService) Check(ctx context.Context, apply bool) (*IntegrityReport, error) {
	var (
		users         map[string]struct{}
		events        []*models.Event
		media         []*models.Media
		notifications []*models.Notification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.userIDs(gctx)
		users = ids
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.store.Events.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		media, err = s.store.Media.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		notifications, err = s.store.Notifications.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	report := &IntegrityReport{
		OrphanEvents:        []string{},
		OrphanMedia:         []string{},
		OrphanNotifications: []string{},
	}

	liveEvents := make(map[string]struct{}, len(events))
	for _, e := range events {
		if _, ok := users[e.Author.UserID]; !ok {
			report.OrphanEvents = append(report.OrphanEvents, e.ID)
			continue
		}
		liveEvents[e.ID] = struct{}{}
	}
	for _, m := range media {
		if _, ok := liveEvents[m.EventID]; !ok {
			report.OrphanMedia = append(report.OrphanMedia, m.ID)
		}
	}
	for _, n := range notifications {
		_, recipient := users[n.Recipient]
		_, sender := users[n.Sender]
		if !recipient || !sender {
			report.OrphanNotifications = append(report.OrphanNotifications, n.ID)
		}
	}

	if !apply || report.Total() == 0 {
		return report, nil
	}

	for _, id := range report.OrphanMedia {
		if _, err := s.store.Media.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return report, fmt.Errorf("failed to delete media %s: %w", id, err)
		}
	}
	for _, id := range report.OrphanNotifications {
		if err := s.store.Notifications.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return report, fmt.Errorf("failed to delete notification %s: %w", id, err)
		}
	}
	for _, id := range report.OrphanEvents {
		if err := s.store.Events.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return report, fmt.Errorf("failed to delete event %s: %w", id, err)
		}
	}
	report.Applied = true

	log.Info().
		Int("events", len(report.OrphanEvents)).
		Int("media", len(report.OrphanMedia)).
		Int("notifications", len(report.OrphanNotifications)).
		Msg("Orphaned records deleted")

	return report, nil
}

func (s *IntegrityService) userIDs(ctx context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for offset := 0; ; offset += integrityPageSize {
		users, err := s.store.Users.List(ctx, integrityPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			ids[u.ID] = struct{}{}
		}
		if len(users) < integrityPageSize {
			return ids, nil
		}
	}
}
