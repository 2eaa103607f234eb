package notify

import (
	"context"
	"time"

	"theater-booking/internal/data/entity"
)

// TicketIssuedEvent is published once a ticket has been committed.
type TicketIssuedEvent struct {
	TicketID   string    `json:"ticket_id"`
	Barcode    string    `json:"barcode"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_national_id"`
	SeatCodes  []string  `json:"seat_codes"`
	Subtotal   string    `json:"subtotal"`
	Discount   string    `json:"discount"`
	Total      string    `json:"total"`
	IssuedAt   time.Time `json:"issued_at"`
}

func NewTicketIssuedEvent(t *entity.Ticket) TicketIssuedEvent {
	return TicketIssuedEvent{
		TicketID:   t.ID.String(),
		Barcode:    t.Barcode,
		SessionID:  t.SessionID,
		CustomerID: t.CustomerID,
		SeatCodes:  t.SeatCodes(),
		Subtotal:   t.Subtotal.StringFixed(2),
		Discount:   t.Discount.StringFixed(2),
		Total:      t.Total.StringFixed(2),
		IssuedAt:   t.PurchasedAt.UTC(),
	}
}

type Publisher interface {
	PublishTicketIssued(ctx context.Context, event TicketIssuedEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTicketIssued(context.Context, TicketIssuedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
