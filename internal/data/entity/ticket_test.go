package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() TicketParams {
	return TicketParams{
		ID:         uuid.New(),
		Barcode:    "TKT-abc",
		SessionID:  "session-1",
		CustomerID: "12345678909",
		Seats: []Seat{
			{Code: "F1-1", Row: 1, Number: 1, Category: CategoryOrchestraFront, BasePrice: decimal.RequireFromString("50.00")},
			{Code: "F1-2", Row: 1, Number: 2, Category: CategoryOrchestraFront, BasePrice: decimal.RequireFromString("50.00")},
		},
		Subtotal:    decimal.RequireFromString("100.00"),
		Discount:    decimal.RequireFromString("5.00"),
		Total:       decimal.RequireFromString("95.00"),
		PurchasedAt: time.Now(),
	}
}

func TestNewTicket(t *testing.T) {
	ticket, err := NewTicket(validParams())
	require.NoError(t, err)

	assert.Equal(t, []string{"F1-1", "F1-2"}, ticket.SeatCodes())
	for _, s := range ticket.Seats {
		assert.Equal(t, SeatOccupied, s.Status)
	}
	assert.Equal(t, "95.00", ticket.Total.StringFixed(2))
}

func TestNewTicket_TotalMismatch(t *testing.T) {
	p := validParams()
	p.Total = decimal.RequireFromString("95.01")

	_, err := NewTicket(p)
	require.ErrorIs(t, err, ErrTicketInvariant)
}

func TestNewTicket_RoundsBeforeCheck(t *testing.T) {
	p := validParams()
	p.Subtotal = decimal.RequireFromString("100.004")
	p.Discount = decimal.RequireFromString("5.004")
	p.Total = decimal.RequireFromString("95.00")

	ticket, err := NewTicket(p)
	require.NoError(t, err)
	assert.Equal(t, "100.00", ticket.Subtotal.StringFixed(2))
}

func TestNewTicket_Rejects(t *testing.T) {
	t.Run("no seats", func(t *testing.T) {
		p := validParams()
		p.Seats = nil
		_, err := NewTicket(p)
		assert.ErrorIs(t, err, ErrTicketInvariant)
	})

	t.Run("duplicate seat", func(t *testing.T) {
		p := validParams()
		p.Seats[1].Code = p.Seats[0].Code
		_, err := NewTicket(p)
		assert.ErrorIs(t, err, ErrTicketInvariant)
	})

	t.Run("missing barcode", func(t *testing.T) {
		p := validParams()
		p.Barcode = ""
		_, err := NewTicket(p)
		assert.ErrorIs(t, err, ErrTicketInvariant)
	})
}

func TestLookupPlan(t *testing.T) {
	p, ok := LookupPlan(" GOLD ")
	assert.True(t, ok)
	assert.Equal(t, PlanIDGold, p.ID)

	p, ok = LookupPlan("platinum")
	assert.False(t, ok)
	assert.Equal(t, PlanIDNone, p.ID)
}

func TestTurno(t *testing.T) {
	turno, err := ParseTurno("Evening")
	require.NoError(t, err)
	assert.Equal(t, "20:00", turno.DisplayTime())

	_, err = ParseTurno("midnight")
	assert.Error(t, err)
}

func TestSectionPrefix(t *testing.T) {
	assert.Equal(t, "F", Section{Name: "Front Stalls"}.Prefix())
	assert.Equal(t, "", Section{}.Prefix())
}
