package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/notify"

	"go.uber.org/zap"
)

var testSession = entity.Session{
	ID:       "hamlet-evening",
	Play:     entity.Play{ID: "hamlet", Title: "Hamlet"},
	StartsAt: time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
	Turno:    entity.TurnoEvening,
}

var (
	goldCustomer     = entity.Customer{NationalID: "11144477735", Name: "Ana", Plan: entity.PlanGold}
	standardCustomer = entity.Customer{NationalID: "52998224725", Name: "Bruno", Plan: entity.PlanStandard}
)

type mapOccupancyCache struct {
	mu          sync.Mutex
	entries     map[string]map[string]struct{}
	generations map[string]int64
	invalidated []string
	getErr      error
}

func newMapOccupancyCache() *mapOccupancyCache {
	return &mapOccupancyCache{
		entries:     make(map[string]map[string]struct{}),
		generations: make(map[string]int64),
	}
}

func (c *mapOccupancyCache) Get(_ context.Context, sessionID string) (map[string]struct{}, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	occ, ok := c.entries[sessionID]
	return occ, ok, nil
}

func (c *mapOccupancyCache) Generation(_ context.Context, sessionID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[sessionID], nil
}

func (c *mapOccupancyCache) Set(_ context.Context, sessionID string, occupied map[string]struct{}, generation int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[sessionID] != generation {
		return nil
	}
	c.entries[sessionID] = occupied
	return nil
}

func (c *mapOccupancyCache) Invalidate(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
	c.generations[sessionID]++
	c.invalidated = append(c.invalidated, sessionID)
	return nil
}

var errDiskFull = errors.New("disk full")

// failingStore fails every commit without writing anything.
type failingStore struct {
	repository.TicketStore
}

func (failingStore) CommitAtomically(context.Context, *entity.Ticket) error {
	return errDiskFull
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.TicketIssuedEvent
	err    error
}

func (p *recordingPublisher) PublishTicketIssued(_ context.Context, event notify.TicketIssuedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	repo      *repository.Repository
	inventory *SeatInventory
	publisher *recordingPublisher
	svc       ReservationService
}

func newFixture(t *testing.T, store repository.TicketStore, cache repository.OccupancyCache) *fixture {
	t.Helper()

	log := zap.NewNop()
	if store == nil {
		store = repository.NewMemoryTicketStore(log)
	}
	repo := &repository.Repository{
		Ticket:    store,
		Session:   repository.NewMemorySessionLookup(testSession),
		Customer:  repository.NewMemoryCustomerLookup(goldCustomer, standardCustomer),
		Occupancy: cache,
	}
	inventory := NewSeatInventory(DefaultLayoutCatalog(), repo.Ticket, repo.Occupancy, log)
	publisher := &recordingPublisher{}

	return &fixture{
		repo:      repo,
		inventory: inventory,
		publisher: publisher,
		svc:       NewReservationService(repo, inventory, NewPricingPolicy(log), publisher, log),
	}
}
