package repository

import (
	"context"
	"fmt"
	"sync"

	"theater-booking/internal/data/entity"
)

// MemorySessionLookup is an in-process SessionLookup.
type MemorySessionLookup struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

func NewMemorySessionLookup(sessions ...entity.Session) *MemorySessionLookup {
	l := &MemorySessionLookup{sessions: make(map[string]entity.Session)}
	for _, s := range sessions {
		l.Add(s)
	}
	return l
}

func (l *MemorySessionLookup) Add(s entity.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[s.ID] = s
}

func (l *MemorySessionLookup) FindByID(_ context.Context, id string) (*entity.Session, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return &s, nil
}

// MemoryCustomerLookup is an in-process CustomerLookup.
type MemoryCustomerLookup struct {
	mu        sync.RWMutex
	customers map[string]entity.Customer
}

func NewMemoryCustomerLookup(customers ...entity.Customer) *MemoryCustomerLookup {
	l := &MemoryCustomerLookup{customers: make(map[string]entity.Customer)}
	for _, c := range customers {
		l.Add(c)
	}
	return l
}

func (l *MemoryCustomerLookup) Add(c entity.Customer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.customers[c.NationalID] = c
}

func (l *MemoryCustomerLookup) FindByNationalID(_ context.Context, nationalID string) (*entity.Customer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.customers[nationalID]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", nationalID, ErrNotFound)
	}
	return &c, nil
}
