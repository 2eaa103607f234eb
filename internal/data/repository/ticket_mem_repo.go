package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"theater-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryTicketStore keeps tickets in process memory. Commits for the same
// session are serialized by a per-session mutex, so check-then-write is safe
// inside it; different sessions commit in parallel.
type memoryTicketStore struct {
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	mu       sync.RWMutex
	tickets  map[uuid.UUID]*entity.Ticket
	order    []uuid.UUID
	occupied map[string]map[string]uuid.UUID // session -> seat code -> ticket

	log *zap.Logger
}

func NewMemoryTicketStore(log *zap.Logger) TicketStore {
	return &memoryTicketStore{
		locks:    make(map[string]*sync.Mutex),
		tickets:  make(map[uuid.UUID]*entity.Ticket),
		occupied: make(map[string]map[string]uuid.UUID),
		log:      log.With(zap.String("repository", "ticket_memory")),
	}
}

func (r *memoryTicketStore) sessionLock(sessionID string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[sessionID] = l
	}
	return l
}

func (r *memoryTicketStore) ListOccupiedSeats(ctx context.Context, sessionID string) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	occupied := make(map[string]struct{}, len(r.occupied[sessionID]))
	for code := range r.occupied[sessionID] {
		occupied[code] = struct{}{}
	}
	return occupied, nil
}

func (r *memoryTicketStore) CommitAtomically(ctx context.Context, ticket *entity.Ticket) error {
	lock := r.sessionLock(ticket.SessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit ticket %s: %w", ticket.ID, err)
	}

	r.mu.RLock()
	var taken []string
	for _, code := range ticket.SeatCodes() {
		if _, ok := r.occupied[ticket.SessionID][code]; ok {
			taken = append(taken, code)
		}
	}
	_, exists := r.tickets[ticket.ID]
	r.mu.RUnlock()

	if len(taken) > 0 {
		return &SeatsTakenError{SessionID: ticket.SessionID, Codes: taken}
	}
	if exists {
		return fmt.Errorf("commit ticket %s: duplicate ticket id", ticket.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seats, ok := r.occupied[ticket.SessionID]
	if !ok {
		seats = make(map[string]uuid.UUID)
		r.occupied[ticket.SessionID] = seats
	}
	for _, code := range ticket.SeatCodes() {
		seats[code] = ticket.ID
	}
	r.tickets[ticket.ID] = cloneTicket(ticket)
	r.order = append(r.order, ticket.ID)

	r.log.Debug("Ticket committed",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("session_id", ticket.SessionID),
		zap.Int("seat_count", len(ticket.Seats)),
	)
	return nil
}

func (r *memoryTicketStore) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	return cloneTicket(t), nil
}

func (r *memoryTicketStore) ListTicketsByCustomer(ctx context.Context, nationalID string) ([]*entity.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tickets []*entity.Ticket
	for _, id := range r.order {
		if t := r.tickets[id]; t.CustomerID == nationalID {
			tickets = append(tickets, cloneTicket(t))
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].PurchasedAt.Before(tickets[j].PurchasedAt)
	})
	return tickets, nil
}

func cloneTicket(t *entity.Ticket) *entity.Ticket {
	c := *t
	c.Seats = append([]entity.Seat(nil), t.Seats...)
	return &c
}
