package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrTicketInvariant = errors.New("ticket invariant violated")

// Ticket is the immutable record of a committed reservation.
type Ticket struct {
	ID          uuid.UUID       `db:"id"`
	Barcode     string          `db:"barcode"`
	SessionID   string          `db:"session_id"`
	CustomerID  string          `db:"customer_national_id"`
	Seats       []Seat          `db:"-"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	Discount    decimal.Decimal `db:"discount_amount"`
	Total       decimal.Decimal `db:"total"`
	PurchasedAt time.Time       `db:"purchased_at"`
}

type TicketParams struct {
	ID          uuid.UUID
	Barcode     string
	SessionID   string
	CustomerID  string
	Seats       []Seat
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	PurchasedAt time.Time
}

// NewTicket builds a Ticket and enforces total == subtotal - discount on
// amounts rounded to cents. Violations are returned, never corrected.
func NewTicket(p TicketParams) (*Ticket, error) {
	if p.ID == uuid.Nil || p.Barcode == "" {
		return nil, fmt.Errorf("%w: missing id or barcode", ErrTicketInvariant)
	}
	if p.SessionID == "" || p.CustomerID == "" {
		return nil, fmt.Errorf("%w: missing session or customer", ErrTicketInvariant)
	}
	if len(p.Seats) == 0 {
		return nil, fmt.Errorf("%w: no seats", ErrTicketInvariant)
	}

	seen := make(map[string]struct{}, len(p.Seats))
	seats := make([]Seat, len(p.Seats))
	for i, s := range p.Seats {
		if _, dup := seen[s.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate seat %s", ErrTicketInvariant, s.Code)
		}
		seen[s.Code] = struct{}{}
		s.Status = SeatOccupied
		seats[i] = s
	}

	subtotal := p.Subtotal.Round(2)
	discount := p.Discount.Round(2)
	total := p.Total.Round(2)
	if subtotal.IsNegative() || discount.IsNegative() || total.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", ErrTicketInvariant)
	}
	if !total.Equal(subtotal.Sub(discount)) {
		return nil, fmt.Errorf("%w: total %s != subtotal %s - discount %s",
			ErrTicketInvariant, total.StringFixed(2), subtotal.StringFixed(2), discount.StringFixed(2))
	}

	return &Ticket{
		ID:          p.ID,
		Barcode:     p.Barcode,
		SessionID:   p.SessionID,
		CustomerID:  p.CustomerID,
		Seats:       seats,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       total,
		PurchasedAt: p.PurchasedAt,
	}, nil
}

// SeatCodes returns the ticket's seat codes in order.
func (t *Ticket) SeatCodes() []string {
	codes := make([]string, len(t.Seats))
	for i, s := range t.Seats {
		codes[i] = s.Code
	}
	return codes
}
