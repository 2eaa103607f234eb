package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSeat(r chi.Router, seatHandler *adaptor.SeatHandler) {
	// GET /api/sessions/{id}/seats - live seat map of a session
	r.Get("/api/sessions/{id}/seats", seatHandler.GetSeatMap)
}
