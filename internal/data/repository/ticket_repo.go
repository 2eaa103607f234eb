package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TicketStore is the persistence boundary for tickets and seat occupancy.
type TicketStore interface {
	// ListOccupiedSeats returns the codes occupied for a session.
	ListOccupiedSeats(ctx context.Context, sessionID string) (map[string]struct{}, error)

	// CommitAtomically re-verifies the ticket's seats are free, stores the
	// ticket and marks the seats occupied, all in one unit of work. It returns
	// an error matching ErrSeatsTaken when a seat is already claimed; any
	// other error means nothing was written either.
	CommitAtomically(ctx context.Context, ticket *entity.Ticket) error

	ListTicketsByCustomer(ctx context.Context, nationalID string) ([]*entity.Ticket, error)
	GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketStore {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) ListOccupiedSeats(ctx context.Context, sessionID string) (map[string]struct{}, error) {
	query := `SELECT seat_code FROM ticket_seats WHERE session_id = $1`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to list occupied seats",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("list occupied seats for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	occupied := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan occupied seat row: %w", err)
		}
		occupied[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupied seats for session %s: %w", sessionID, err)
	}

	return occupied, nil
}

func (r *ticketRepository) CommitAtomically(ctx context.Context, ticket *entity.Ticket) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin commit transaction", zap.Error(err))
		return fmt.Errorf("begin commit for ticket %s: %w", ticket.ID, err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("rollback ticket %s: %w", ticket.ID, rbErr))
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO tickets (id, barcode, session_id, customer_national_id, subtotal, discount_amount, total, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		ticket.ID,
		ticket.Barcode,
		ticket.SessionID,
		ticket.CustomerID,
		ticket.Subtotal,
		ticket.Discount,
		ticket.Total,
		ticket.PurchasedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("insert ticket %s: %w", ticket.ID, err)
	}

	// Occupancy rows are the authoritative availability check: the primary key
	// (session_id, seat_code) rejects a seat that another ticket already holds,
	// and concurrent inserts of the same key wait for each other. Rows go in
	// seat code order so overlapping tickets take key locks in the same order.
	query := `INSERT INTO ticket_seats (session_id, seat_code, ticket_id, position, row_number, seat_number, category, price) VALUES `
	args := make([]any, 0, len(ticket.Seats)*8)
	for n, i := range seatInsertOrder(ticket.Seats) {
		seat := ticket.Seats[i]
		if n > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			n*8+1, n*8+2, n*8+3, n*8+4, n*8+5, n*8+6, n*8+7, n*8+8)

		args = append(args,
			ticket.SessionID,
			seat.Code,
			ticket.ID,
			i,
			seat.Row,
			seat.Number,
			seat.Category,
			seat.BasePrice,
		)
	}
	query += ` ON CONFLICT (session_id, seat_code) DO NOTHING RETURNING seat_code`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return r.seatInsertError(ticket, err)
	}
	inserted := make(map[string]struct{}, len(ticket.Seats))
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			rows.Close()
			return fmt.Errorf("scan inserted seat row: %w", err)
		}
		inserted[code] = struct{}{}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return r.seatInsertError(ticket, err)
	}

	if len(inserted) != len(ticket.Seats) {
		var taken []string
		for _, code := range ticket.SeatCodes() {
			if _, ok := inserted[code]; !ok {
				taken = append(taken, code)
			}
		}
		err = &SeatsTakenError{SessionID: ticket.SessionID, Codes: taken}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("commit ticket %s: %w", ticket.ID, err)
	}

	return nil
}

// seatInsertOrder returns the indexes of seats sorted by seat code.
func seatInsertOrder(seats []entity.Seat) []int {
	order := make([]int, len(seats))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return seats[order[a]].Code < seats[order[b]].Code
	})
	return order
}

// seatInsertError maps contention on ticket_seats to SeatsTakenError. A
// deadlock or serialization failure means another ticket claimed an
// overlapping seat; the loser is rolled back like a plain conflict.
func (r *ticketRepository) seatInsertError(ticket *entity.Ticket, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && strings.HasPrefix(pgErr.ConstraintName, "ticket_seats"),
			pgErr.Code == pgDeadlockDetected,
			pgErr.Code == pgSerializationFailure:
			r.log.Info("Ticket seats contended",
				zap.String("ticket_id", ticket.ID.String()),
				zap.String("session_id", ticket.SessionID),
				zap.String("pg_code", pgErr.Code),
			)
			return &SeatsTakenError{SessionID: ticket.SessionID}
		}
	}

	r.log.Error("Failed to insert ticket seats",
		zap.Error(err),
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("session_id", ticket.SessionID),
	)
	return fmt.Errorf("insert seats for ticket %s: %w", ticket.ID, err)
}

func (r *ticketRepository) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, barcode, session_id, customer_national_id, subtotal, discount_amount, total, purchased_at
		FROM tickets
		WHERE id = $1
	`

	var t entity.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Barcode,
		&t.SessionID,
		&t.CustomerID,
		&t.Subtotal,
		&t.Discount,
		&t.Total,
		&t.PurchasedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id, err)
	}

	tickets := []*entity.Ticket{&t}
	if err := r.loadSeats(ctx, tickets); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *ticketRepository) ListTicketsByCustomer(ctx context.Context, nationalID string) ([]*entity.Ticket, error) {
	query := `
		SELECT id, barcode, session_id, customer_national_id, subtotal, discount_amount, total, purchased_at
		FROM tickets
		WHERE customer_national_id = $1
		ORDER BY purchased_at, id
	`

	rows, err := r.db.Query(ctx, query, nationalID)
	if err != nil {
		r.log.Error("Failed to find tickets by customer",
			zap.Error(err),
			zap.String("national_id", nationalID),
		)
		return nil, fmt.Errorf("find tickets by customer %s: %w", nationalID, err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		err := rows.Scan(
			&t.ID,
			&t.Barcode,
			&t.SessionID,
			&t.CustomerID,
			&t.Subtotal,
			&t.Discount,
			&t.Total,
			&t.PurchasedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets for customer %s: %w", nationalID, err)
	}
	rows.Close()

	if err := r.loadSeats(ctx, tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// loadSeats fills Seats for every ticket with a single query.
func (r *ticketRepository) loadSeats(ctx context.Context, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(tickets))
	byID := make(map[uuid.UUID]*entity.Ticket, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	query := `
		SELECT ticket_id, seat_code, row_number, seat_number, category, price
		FROM ticket_seats
		WHERE ticket_id = ANY($1)
		ORDER BY ticket_id, position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load ticket seats", zap.Error(err), zap.Int("tickets", len(ids)))
		return fmt.Errorf("load ticket seats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ticketID uuid.UUID
		var s entity.Seat
		if err := rows.Scan(&ticketID, &s.Code, &s.Row, &s.Number, &s.Category, &s.BasePrice); err != nil {
			return fmt.Errorf("scan ticket seat row: %w", err)
		}
		s.Status = entity.SeatOccupied
		if t, ok := byID[ticketID]; ok {
			t.Seats = append(t.Seats, s)
		}
	}

	return rows.Err()
}
