package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type TicketSeatResponse struct {
	Code     string          `json:"code"`
	Row      int             `json:"row"`
	Number   int             `json:"number"`
	Category entity.Category `json:"category"`
	Price    string          `json:"price"`
}

type TicketResponse struct {
	ID          string               `json:"id"`
	Barcode     string               `json:"barcode"`
	SessionID   string               `json:"session_id"`
	NationalID  string               `json:"national_id"`
	Seats       []TicketSeatResponse `json:"seats"`
	Subtotal    string               `json:"subtotal"`
	Discount    string               `json:"discount"`
	Total       string               `json:"total"`
	PurchasedAt time.Time            `json:"purchased_at"`
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	seats := make([]TicketSeatResponse, len(t.Seats))
	for i, s := range t.Seats {
		seats[i] = TicketSeatResponse{
			Code:     s.Code,
			Row:      s.Row,
			Number:   s.Number,
			Category: s.Category,
			Price:    s.BasePrice.StringFixed(2),
		}
	}

	return TicketResponse{
		ID:          t.ID.String(),
		Barcode:     t.Barcode,
		SessionID:   t.SessionID,
		NationalID:  t.CustomerID,
		Seats:       seats,
		Subtotal:    t.Subtotal.StringFixed(2),
		Discount:    t.Discount.StringFixed(2),
		Total:       t.Total.StringFixed(2),
		PurchasedAt: t.PurchasedAt,
	}
}
