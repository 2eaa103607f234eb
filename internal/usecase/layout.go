package usecase

import (
	"fmt"

	"theater-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// LayoutCatalog is the declarative seating plan of the house. Seat codes and
// base prices are derived from it and nowhere else.
type LayoutCatalog struct {
	sections []entity.Section
	prices   map[entity.Category]decimal.Decimal
	seats    []entity.Seat
	byCode   map[string]entity.Seat
}

// NewLayoutCatalog validates the layout once so that Expand is total.
func NewLayoutCatalog(sections []entity.Section, prices map[entity.Category]decimal.Decimal) (*LayoutCatalog, error) {
	prefixes := make(map[string]string, len(sections))
	for _, sec := range sections {
		prefix := sec.Prefix()
		if prefix == "" {
			return nil, fmt.Errorf("section with empty name")
		}
		if other, dup := prefixes[prefix]; dup {
			return nil, fmt.Errorf("sections %q and %q share prefix %q", other, sec.Name, prefix)
		}
		prefixes[prefix] = sec.Name

		if sec.RowCount <= 0 || sec.SeatsPerRow <= 0 {
			return nil, fmt.Errorf("section %q needs positive row and seat counts", sec.Name)
		}
		price, ok := prices[sec.Category]
		if !ok {
			return nil, fmt.Errorf("no base price for category %s", sec.Category)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("negative base price for category %s", sec.Category)
		}
	}

	c := &LayoutCatalog{
		sections: append([]entity.Section(nil), sections...),
		prices:   make(map[entity.Category]decimal.Decimal, len(prices)),
	}
	for cat, p := range prices {
		c.prices[cat] = p.Round(2)
	}
	c.seats = c.expand()
	c.byCode = make(map[string]entity.Seat, len(c.seats))
	for _, s := range c.seats {
		c.byCode[s.Code] = s
	}

	return c, nil
}

// DefaultLayoutCatalog is the house layout.
func DefaultLayoutCatalog() *LayoutCatalog {
	c, err := NewLayoutCatalog(
		[]entity.Section{
			{Name: "Front Stalls", Category: entity.CategoryOrchestraFront, RowCount: 5, SeatsPerRow: 10},
			{Name: "Rear Stalls", Category: entity.CategoryOrchestraBack, RowCount: 10, SeatsPerRow: 10},
			{Name: "Box", Category: entity.CategoryBox, RowCount: 5, SeatsPerRow: 4},
			{Name: "Premium Balcony", Category: entity.CategoryBalconyPremium, RowCount: 3, SeatsPerRow: 12},
		},
		map[entity.Category]decimal.Decimal{
			entity.CategoryOrchestraFront: decimal.RequireFromString("60.00"),
			entity.CategoryOrchestraBack:  decimal.RequireFromString("40.00"),
			entity.CategoryBox:            decimal.RequireFromString("120.00"),
			entity.CategoryBalconyPremium: decimal.RequireFromString("80.00"),
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *LayoutCatalog) expand() []entity.Seat {
	total := 0
	for _, sec := range c.sections {
		total += sec.RowCount * sec.SeatsPerRow
	}

	seats := make([]entity.Seat, 0, total)
	for _, sec := range c.sections {
		prefix := sec.Prefix()
		price := c.prices[sec.Category]
		for row := 1; row <= sec.RowCount; row++ {
			for num := 1; num <= sec.SeatsPerRow; num++ {
				seats = append(seats, entity.Seat{
					Code:      fmt.Sprintf("%s%d-%d", prefix, row, num),
					Row:       row,
					Number:    num,
					Category:  sec.Category,
					BasePrice: price,
					Status:    entity.SeatAvailable,
				})
			}
		}
	}
	return seats
}

// Expand returns every seat of the layout in section, row, number order.
// The result is a fresh copy; callers may mutate it.
func (c *LayoutCatalog) Expand() []entity.Seat {
	seats := make([]entity.Seat, len(c.seats))
	copy(seats, c.seats)
	return seats
}

// Lookup returns the seat for code, if the layout has it.
func (c *LayoutCatalog) Lookup(code string) (entity.Seat, bool) {
	s, ok := c.byCode[code]
	return s, ok
}

func (c *LayoutCatalog) Size() int {
	return len(c.seats)
}
