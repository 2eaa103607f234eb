package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler) {
	// GET /api/tickets/{id} - ticket details
	r.Get("/api/tickets/{id}", ticketHandler.GetTicket)

	// GET /api/tickets/{id}/barcode.png - barcode as QR image
	r.Get("/api/tickets/{id}/barcode.png", ticketHandler.GetBarcode)

	// GET /api/customers/{nationalId}/tickets - purchase history
	r.Get("/api/customers/{nationalId}/tickets", ticketHandler.GetCustomerTickets)
}
