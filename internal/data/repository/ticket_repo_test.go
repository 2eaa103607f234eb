package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostgresTestDB(t *testing.T) database.PgxIface {
	t.Helper()

	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	db, err := database.Connect(url, 20)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.InitializeSchema(context.Background(), db))
	return db
}

func TestPostgresTicketStore_CommitAndRead(t *testing.T) {
	db := newPostgresTestDB(t)
	ctx := context.Background()
	store := NewTicketRepository(db, zap.NewNop())

	sessionID := "test-" + uuid.NewString()
	customerID := uuid.NewString()[:11]
	ticket := newTestTicket(t, sessionID, customerID, "F1-1", "F1-2")

	require.NoError(t, store.CommitAtomically(ctx, ticket))

	occupied, err := store.ListOccupiedSeats(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, occupied, 2)

	got, err := store.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.SeatCodes(), got.SeatCodes())
	assert.True(t, ticket.Total.Equal(got.Total))

	tickets, err := store.ListTicketsByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Len(t, tickets[0].Seats, 2)

	_, err = store.GetTicket(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresTicketStore_ConflictRollsBack(t *testing.T) {
	db := newPostgresTestDB(t)
	ctx := context.Background()
	store := NewTicketRepository(db, zap.NewNop())

	sessionID := "test-" + uuid.NewString()
	require.NoError(t, store.CommitAtomically(ctx, newTestTicket(t, sessionID, "111", "F1-2")))

	second := newTestTicket(t, sessionID, "222", "F1-1", "F1-2")
	err := store.CommitAtomically(ctx, second)
	require.ErrorIs(t, err, ErrSeatsTaken)

	occupied, err := store.ListOccupiedSeats(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, occupied, 1)

	_, err = store.GetTicket(ctx, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresTicketStore_ConcurrentCommitsSameSeat(t *testing.T) {
	db := newPostgresTestDB(t)
	ctx := context.Background()
	store := NewTicketRepository(db, zap.NewNop())

	sessionID := "test-" + uuid.NewString()
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for i := 0; i < attempts; i++ {
		ticket := newTestTicket(t, sessionID, "111", "B1-1")
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.CommitAtomically(ctx, ticket)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSeatsTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, taken)
}

func TestPostgresTicketStore_OppositeOrderCommits(t *testing.T) {
	db := newPostgresTestDB(t)
	ctx := context.Background()
	store := NewTicketRepository(db, zap.NewNop())

	const rounds = 25
	for round := 0; round < rounds; round++ {
		sessionID := "test-" + uuid.NewString()
		tickets := []*entity.Ticket{
			newTestTicket(t, sessionID, "111", "F1-1", "F1-2", "F1-3"),
			newTestTicket(t, sessionID, "222", "F1-3", "F1-2", "F1-1"),
		}

		errs := make([]error, len(tickets))
		var wg sync.WaitGroup
		for i, ticket := range tickets {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = store.CommitAtomically(ctx, ticket)
			}()
		}
		wg.Wait()

		succeeded := 0
		for i, err := range errs {
			if err == nil {
				succeeded++
				got, getErr := store.GetTicket(ctx, tickets[i].ID)
				require.NoError(t, getErr)
				assert.Equal(t, tickets[i].SeatCodes(), got.SeatCodes(), "seats keep request order")
				continue
			}
			assert.ErrorIs(t, err, ErrSeatsTaken, "round %d", round)
		}
		assert.Equal(t, 1, succeeded, "round %d", round)
	}
}

func TestSeatInsertOrder(t *testing.T) {
	ticket := newTestTicket(t, "s", "111", "R2-1", "B1-10", "F1-2", "B1-1")
	order := seatInsertOrder(ticket.Seats)

	codes := make([]string, len(order))
	for n, i := range order {
		codes[n] = ticket.Seats[i].Code
	}
	assert.Equal(t, []string{"B1-1", "B1-10", "F1-2", "R2-1"}, codes)
	assert.Equal(t, []string{"R2-1", "B1-10", "F1-2", "B1-1"}, ticket.SeatCodes())
}

func TestSeatInsertError(t *testing.T) {
	store := &ticketRepository{log: zap.NewNop()}
	ticket := newTestTicket(t, "s", "111", "F1-1")

	tests := []struct {
		name  string
		err   error
		taken bool
	}{
		{"unique violation on seats", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "ticket_seats_pkey"}, true},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, true},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, true},
		{"unique violation elsewhere", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "tickets_barcode_key"}, false},
		{"connection reset", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.seatInsertError(ticket, tt.err)
			assert.Equal(t, tt.taken, errors.Is(err, ErrSeatsTaken))
			if !tt.taken {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
