package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/api/reservations", func(r chi.Router) {
		// POST /api/reservations - reserve seats and issue a ticket
		r.Post("/", reservationHandler.CreateReservation)

		// POST /api/reservations/quote - price a selection without reserving
		r.Post("/quote", reservationHandler.Quote)
	})
}
