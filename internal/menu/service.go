package menu

import (
	"context"
	"sync"

	"biteaffair/internal/guests"
	"biteaffair/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// Service loads catalog sources on first use and keeps the normalized items.
// Failed loads are not cached, so a retry hits the repository again.
type Service struct {
	repo Repository

	mu     sync.RWMutex
	items  map[Mode][]Item
	addons []Addon
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		items: make(map[Mode][]Item),
	}
}

// --------------------------------------------------
// Items returns the normalized items of one mode
// --------------------------------------------------
func (s *Service) Items(ctx context.Context, mode Mode) ([]Item, error) {
	source := sourceFor(mode)
	if source == "" {
		return nil, ErrUnknownMode
	}

	s.mu.RLock()
	cached, ok := s.items[mode]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := s.repo.Load(ctx, source)
	if err != nil {
		return nil, s.loadFailed(mode, source, err)
	}

	items, err := adapt(mode, data)
	if err != nil {
		return nil, s.loadFailed(mode, source, err)
	}

	s.mu.Lock()
	s.items[mode] = items
	s.mu.Unlock()

	log.WithFields(log.Fields{"mode": mode, "items": len(items)}).Info("menu catalog loaded")
	return items, nil
}

func (s *Service) loadFailed(mode Mode, source string, err error) error {
	metrics.CatalogLoadFailures.WithLabelValues(string(mode)).Inc()
	log.WithFields(log.Fields{"mode": mode, "source": source}).WithError(err).Warn("menu catalog load failed")
	return &MenuLoadError{Mode: mode, Source: source, Err: err}
}

// --------------------------------------------------
// Resolve prices the mode's items for a guest count
// --------------------------------------------------
func (s *Service) Resolve(ctx context.Context, req Request, g guests.Count) ([]Resolved, error) {
	items, err := s.Items(ctx, req.Mode)
	if err != nil {
		return nil, err
	}
	return Resolve(items, req, g), nil
}

// ResolveOne resolves a single item by id.
func (s *Service) ResolveOne(ctx context.Context, req Request, id string, g guests.Count) (Resolved, error) {
	items, err := s.Items(ctx, req.Mode)
	if err != nil {
		return Resolved{}, err
	}

	for _, item := range items {
		if item.ID != id {
			continue
		}
		resolved := Resolve([]Item{item}, Request{Mode: req.Mode, Pax: req.Pax}, g)
		return resolved[0], nil
	}
	return Resolved{}, ErrItemNotFound
}

// --------------------------------------------------
// Veg package selection
// --------------------------------------------------
func (s *Service) ValidatePackage(ctx context.Context, tier Tier, sel Selection) (*PackageDetails, error) {
	items, err := s.Items(ctx, ModeVegPackage)
	if err != nil {
		return nil, err
	}
	return ValidateSelection(items, tier, sel)
}

// --------------------------------------------------
// Add-ons
// --------------------------------------------------
func (s *Service) Addons(ctx context.Context) ([]Addon, error) {
	s.mu.RLock()
	cached := s.addons
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	data, err := s.repo.Load(ctx, SourceAddons)
	if err != nil {
		return nil, err
	}

	addons, err := adaptAddons(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.addons = addons
	s.mu.Unlock()
	return addons, nil
}

func (s *Service) Addon(ctx context.Context, id string) (Addon, error) {
	addons, err := s.Addons(ctx)
	if err != nil {
		return Addon{}, err
	}
	for _, a := range addons {
		if a.ID == id {
			return a, nil
		}
	}
	return Addon{}, ErrItemNotFound
}

// Refresh drops every cached source; the next request reloads from the repository.
func (s *Service) Refresh() {
	s.mu.Lock()
	s.items = make(map[Mode][]Item)
	s.addons = nil
	s.mu.Unlock()
}
