package usecase

import (
	"theater-booking/internal/data/repository"
	"theater-booking/internal/notify"

	"go.uber.org/zap"
)

type Service struct {
	Inventory   *SeatInventory
	Reservation ReservationService
	Seat        SeatService
	Ticket      TicketService
}

func NewService(repo *repository.Repository, layout *LayoutCatalog, publisher notify.Publisher, log *zap.Logger) *Service {
	inventory := NewSeatInventory(layout, repo.Ticket, repo.Occupancy, log)
	pricing := NewPricingPolicy(log)

	return &Service{
		Inventory:   inventory,
		Reservation: NewReservationService(repo, inventory, pricing, publisher, log),
		Seat:        NewSeatService(repo, inventory, log),
		Ticket:      NewTicketService(repo.Ticket, log),
	}
}
