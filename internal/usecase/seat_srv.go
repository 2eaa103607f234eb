package usecase

import (
	"context"

	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/response"

	"go.uber.org/zap"
)

type SeatService interface {
	SeatMap(ctx context.Context, sessionID string) (*response.SeatMapResponse, error)
}

type seatService struct {
	repo      *repository.Repository
	inventory *SeatInventory
	log       *zap.Logger
}

func NewSeatService(repo *repository.Repository, inventory *SeatInventory, log *zap.Logger) SeatService {
	return &seatService{
		repo:      repo,
		inventory: inventory,
		log:       log.With(zap.String("service", "seat")),
	}
}

func (s *seatService) SeatMap(ctx context.Context, sessionID string) (*response.SeatMapResponse, error) {
	session, err := s.repo.Session.FindByID(ctx, sessionID)
	if err != nil {
		return nil, lookupError("session", sessionID, err)
	}

	seats, err := s.inventory.ListSeats(ctx, session)
	if err != nil {
		s.log.Error("Failed to list seats", zap.Error(err), zap.String("session_id", sessionID))
		return nil, err
	}
	summary := summarize(seats)

	return &response.SeatMapResponse{
		Session: response.SessionToResponse(session),
		Summary: response.SeatSummaryResponse{
			Total:      summary.Total,
			Available:  summary.Available,
			Occupied:   summary.Occupied,
			ByCategory: summary.ByCategory,
		},
		Seats: response.SeatsToResponse(seats),
	}, nil
}
