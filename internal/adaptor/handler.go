package adaptor

import (
	"theater-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Seat        *SeatHandler
	Ticket      *TicketHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, log),
		Seat:        NewSeatHandler(service.Seat, log),
		Ticket:      NewTicketHandler(service.Ticket, log),
	}
}
