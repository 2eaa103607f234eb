package usecase

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const barcodeImageSize = 256

type TicketService interface {
	GetTicket(ctx context.Context, ticketID string) (*response.TicketResponse, error)
	GetBarcodePNG(ctx context.Context, ticketID string) ([]byte, error)
	ListTicketsByCustomer(ctx context.Context, nationalID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
}

type ticketService struct {
	store repository.TicketStore
	log   *zap.Logger
}

func NewTicketService(store repository.TicketStore, log *zap.Logger) TicketService {
	return &ticketService{
		store: store,
		log:   log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) find(ctx context.Context, ticketID string) (*entity.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, invalidInput(fmt.Sprintf("invalid ticket ID %q", ticketID))
	}

	ticket, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return nil, lookupError("ticket", ticketID, err)
	}
	return ticket, nil
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	ticket, err := s.find(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

// GetBarcodePNG renders the ticket barcode as a QR code image.
func (s *ticketService) GetBarcodePNG(ctx context.Context, ticketID string) ([]byte, error) {
	ticket, err := s.find(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	png, err := utils.GenerateQRCode(ticket.Barcode, barcodeImageSize)
	if err != nil {
		s.log.Error("Failed to render barcode", zap.Error(err), zap.String("ticket_id", ticketID))
		return nil, fmt.Errorf("render barcode for ticket %s: %w", ticketID, err)
	}
	return png, nil
}

func (s *ticketService) ListTicketsByCustomer(ctx context.Context, nationalID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	nationalID = utils.NormalizeNationalID(nationalID)
	if nationalID == "" {
		return nil, invalidInput("national ID must contain digits")
	}

	tickets, err := s.store.ListTicketsByCustomer(ctx, nationalID)
	if err != nil {
		s.log.Error("Failed to list customer tickets",
			zap.Error(err),
			zap.String("national_id", nationalID),
		)
		return nil, fmt.Errorf("%w: list tickets for customer %s: %w", ErrPersistence, nationalID, err)
	}

	limit := req.Limit()
	offset := req.Offset()
	page := make([]response.TicketResponse, 0, limit)
	for i := offset; i < len(tickets) && len(page) < limit; i++ {
		page = append(page, response.TicketToResponse(tickets[i]))
	}

	return response.NewPaginatedResponse(page, req.Page, limit, int64(len(tickets))), nil
}
