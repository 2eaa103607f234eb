package usecase

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"

	"go.uber.org/zap"
)

// SeatSummary counts the seats of a session by status.
type SeatSummary struct {
	Total      int                     `json:"total"`
	Available  int                     `json:"available"`
	Occupied   int                     `json:"occupied"`
	ByCategory map[entity.Category]int `json:"available_by_category"`
}

// SeatInventory overlays persisted occupancy on the layout expansion. Its
// answers are advisory: only TicketStore.CommitAtomically decides whether a
// seat can be claimed.
type SeatInventory struct {
	layout *LayoutCatalog
	store  repository.TicketStore
	cache  repository.OccupancyCache
	log    *zap.Logger
}

// NewSeatInventory builds the inventory. cache may be nil.
func NewSeatInventory(layout *LayoutCatalog, store repository.TicketStore, cache repository.OccupancyCache, log *zap.Logger) *SeatInventory {
	return &SeatInventory{
		layout: layout,
		store:  store,
		cache:  cache,
		log:    log.With(zap.String("service", "inventory")),
	}
}

func (i *SeatInventory) Layout() *LayoutCatalog {
	return i.layout
}

func (i *SeatInventory) occupied(ctx context.Context, sessionID string) (map[string]struct{}, error) {
	cacheable := false
	var generation int64
	if i.cache != nil {
		occupied, ok, err := i.cache.Get(ctx, sessionID)
		if err != nil {
			i.log.Warn("Occupancy cache read failed", zap.String("session_id", sessionID), zap.Error(err))
		} else if ok {
			return occupied, nil
		}

		// The generation must be read before the store so a commit that
		// lands in between makes the write below a no-op.
		generation, err = i.cache.Generation(ctx, sessionID)
		if err != nil {
			i.log.Warn("Occupancy cache generation read failed", zap.String("session_id", sessionID), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	occupied, err := i.store.ListOccupiedSeats(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: list occupied seats for session %s: %w", ErrPersistence, sessionID, err)
	}

	if cacheable {
		if err := i.cache.Set(ctx, sessionID, occupied, generation); err != nil {
			i.log.Warn("Occupancy cache write failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return occupied, nil
}

// Invalidate drops the cached occupancy of a session and bumps its
// generation so in-flight reads do not repopulate it.
func (i *SeatInventory) Invalidate(ctx context.Context, sessionID string) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Invalidate(ctx, sessionID); err != nil {
		i.log.Warn("Occupancy cache invalidation failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// ListSeats returns every seat of the session in layout order, each either
// Available or Occupied.
func (i *SeatInventory) ListSeats(ctx context.Context, session *entity.Session) ([]entity.Seat, error) {
	if session == nil {
		return nil, invalidInput("session is required")
	}

	occupied, err := i.occupied(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	seats := i.layout.Expand()
	for idx := range seats {
		if _, ok := occupied[seats[idx].Code]; ok {
			seats[idx].Status = entity.SeatOccupied
		} else {
			seats[idx].Status = entity.SeatAvailable
		}
	}
	return seats, nil
}

// CheckAvailability reports whether every code exists in the layout and is
// free for the session. An empty set is available.
func (i *SeatInventory) CheckAvailability(ctx context.Context, session *entity.Session, codes []string) (bool, error) {
	if session == nil {
		return false, invalidInput("session is required")
	}
	if len(codes) == 0 {
		return true, nil
	}
	if len(i.UnknownCodes(codes)) > 0 {
		return false, nil
	}

	occupied, err := i.occupied(ctx, session.ID)
	if err != nil {
		return false, err
	}
	return len(takenCodes(occupied, codes)) == 0, nil
}

// UnknownCodes returns the codes that are not part of the layout, in input order.
func (i *SeatInventory) UnknownCodes(codes []string) []string {
	var unknown []string
	for _, code := range codes {
		if _, ok := i.layout.Lookup(code); !ok {
			unknown = append(unknown, code)
		}
	}
	return unknown
}

// TakenCodes returns the requested codes already occupied for the session.
func (i *SeatInventory) TakenCodes(ctx context.Context, session *entity.Session, codes []string) ([]string, error) {
	if session == nil {
		return nil, invalidInput("session is required")
	}
	occupied, err := i.occupied(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return takenCodes(occupied, codes), nil
}

func summarize(seats []entity.Seat) SeatSummary {
	summary := SeatSummary{
		Total:      len(seats),
		ByCategory: make(map[entity.Category]int),
	}
	for _, s := range seats {
		if s.Status == entity.SeatOccupied {
			summary.Occupied++
			continue
		}
		summary.Available++
		summary.ByCategory[s.Category]++
	}
	return summary
}

func takenCodes(occupied map[string]struct{}, codes []string) []string {
	var taken []string
	for _, code := range codes {
		if _, ok := occupied[code]; ok {
			taken = append(taken, code)
		}
	}
	return taken
}
