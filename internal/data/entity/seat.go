package entity

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryOrchestraFront Category = "orchestra-front"
	CategoryOrchestraBack  Category = "orchestra-back"
	CategoryBox            Category = "box"
	CategoryBalconyPremium Category = "balcony-premium"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected" // UI-local, never persisted
	SeatOccupied  SeatStatus = "occupied"
)

// Seat is identified by Code within a session.
type Seat struct {
	Code      string          `db:"seat_code"`
	Row       int             `db:"row_number"`
	Number    int             `db:"seat_number"`
	Category  Category        `db:"category"`
	BasePrice decimal.Decimal `db:"price"`
	Status    SeatStatus      `db:"-"`
}

// Section is one block of the house: RowCount rows of SeatsPerRow seats.
type Section struct {
	Name        string
	Category    Category
	RowCount    int
	SeatsPerRow int
}

// Prefix is the first character of the section name.
func (s Section) Prefix() string {
	r, size := utf8.DecodeRuneInString(s.Name)
	if size == 0 {
		return ""
	}
	return string(r)
}
