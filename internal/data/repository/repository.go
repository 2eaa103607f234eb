package repository

import (
	"theater-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Ticket   TicketStore
	Session  SessionLookup
	Customer CustomerLookup
	// Occupancy is nil when no cache is configured.
	Occupancy OccupancyCache
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Ticket:   NewTicketRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Customer: NewCustomerRepository(db, log),
	}
}

// NewMemoryRepository builds a process-local repository preloaded with the
// demo sessions and customers.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Ticket:   NewMemoryTicketStore(log),
		Session:  NewMemorySessionLookup(DemoSessions()...),
		Customer: NewMemoryCustomerLookup(DemoCustomers()...),
	}
}

// WithOccupancyCache sets the occupancy cache and returns the repository.
func (r *Repository) WithOccupancyCache(cache OccupancyCache) *Repository {
	r.Occupancy = cache
	return r
}
