package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/internal/notify"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// CreateReservation turns a seat selection into a committed ticket. It
	// returns ErrInvalidInput, ErrSeatsUnavailable or ErrPersistence.
	CreateReservation(ctx context.Context, session *entity.Session, customer *entity.Customer, codes []string) (*entity.Ticket, error)

	// Reserve resolves the session and customer of the request, then
	// creates the reservation.
	Reserve(ctx context.Context, req *request.CreateReservationRequest) (*response.TicketResponse, error)

	// Quote prices a selection for a customer without reserving it.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	inventory *SeatInventory
	pricing   *PricingPolicy
	publisher notify.Publisher
	log       *zap.Logger

	now        func() time.Time
	newID      func() uuid.UUID
	newBarcode func() string
}

func NewReservationService(repo *repository.Repository, inventory *SeatInventory, pricing *PricingPolicy, publisher notify.Publisher, log *zap.Logger) ReservationService {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &reservationService{
		repo:       repo,
		inventory:  inventory,
		pricing:    pricing,
		publisher:  publisher,
		log:        log.With(zap.String("service", "reservation")),
		now:        time.Now,
		newID:      utils.GenerateTicketID,
		newBarcode: utils.GenerateBarcode,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, session *entity.Session, customer *entity.Customer, codes []string) (*entity.Ticket, error) {
	seats, err := s.validate(session, customer, codes)
	if err != nil {
		s.log.Info("Reservation rejected", zap.Error(err))
		return nil, err
	}

	// Pre-flight only. The commit below re-checks atomically.
	taken, err := s.inventory.TakenCodes(ctx, session, codes)
	if err != nil {
		s.log.Error("Failed to check seat availability",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		return nil, err
	}
	if len(taken) > 0 {
		s.log.Info("Seats unavailable",
			zap.String("session_id", session.ID),
			zap.Strings("seats", taken),
		)
		return nil, &SeatsUnavailableError{SessionID: session.ID, Codes: taken}
	}

	quote := s.pricing.Compute(seats, customer.Plan)
	ticket, err := entity.NewTicket(entity.TicketParams{
		ID:          s.newID(),
		Barcode:     s.newBarcode(),
		SessionID:   session.ID,
		CustomerID:  customer.NationalID,
		Seats:       seats,
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		Total:       quote.Total,
		PurchasedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Error("Failed to build ticket", zap.Error(err))
		return nil, fmt.Errorf("build ticket: %w", err)
	}

	if err := s.repo.Ticket.CommitAtomically(ctx, ticket); err != nil {
		var takenErr *repository.SeatsTakenError
		if errors.As(err, &takenErr) {
			s.log.Info("Seats claimed concurrently",
				zap.String("session_id", session.ID),
				zap.Strings("seats", takenErr.Codes),
			)
			return nil, &SeatsUnavailableError{SessionID: session.ID, Codes: takenErr.Codes}
		}
		if errors.Is(err, repository.ErrSeatsTaken) {
			return nil, &SeatsUnavailableError{SessionID: session.ID}
		}

		s.log.Error("Failed to commit reservation",
			zap.Error(err),
			zap.String("session_id", session.ID),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return nil, fmt.Errorf("%w: commit ticket %s: %w", ErrPersistence, ticket.ID, err)
	}

	s.inventory.Invalidate(ctx, session.ID)

	if err := s.publisher.PublishTicketIssued(ctx, notify.NewTicketIssuedEvent(ticket)); err != nil {
		s.log.Warn("Failed to publish ticket issued event",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
	}

	s.log.Info("Reservation committed",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("session_id", session.ID),
		zap.String("national_id", customer.NationalID),
		zap.Strings("seats", ticket.SeatCodes()),
		zap.String("total", ticket.Total.StringFixed(2)),
	)

	return ticket, nil
}

// validate checks the arguments and returns the layout seats for codes, in
// request order.
func (s *reservationService) validate(session *entity.Session, customer *entity.Customer, codes []string) ([]entity.Seat, error) {
	if session == nil || session.ID == "" {
		return nil, invalidInput("session is required")
	}
	if customer == nil || customer.NationalID == "" {
		return nil, invalidInput("customer is required")
	}
	if len(codes) == 0 {
		return nil, invalidInput("no seats selected")
	}

	seen := make(map[string]struct{}, len(codes))
	var dups []string
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			dups = append(dups, code)
			continue
		}
		seen[code] = struct{}{}
	}
	if len(dups) > 0 {
		return nil, invalidInput("duplicate seats", dups...)
	}

	if unknown := s.inventory.UnknownCodes(codes); len(unknown) > 0 {
		return nil, invalidInput("seats not in session layout", unknown...)
	}

	seats := make([]entity.Seat, len(codes))
	for i, code := range codes {
		seats[i], _ = s.inventory.Layout().Lookup(code)
	}
	return seats, nil
}

func (s *reservationService) Reserve(ctx context.Context, req *request.CreateReservationRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	session, customer, err := s.resolve(ctx, req.SessionID, req.NationalID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.CreateReservation(ctx, session, customer, req.SeatCodes)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *reservationService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	session, customer, err := s.resolve(ctx, req.SessionID, req.NationalID)
	if err != nil {
		return nil, err
	}

	seats, err := s.validate(session, customer, req.SeatCodes)
	if err != nil {
		return nil, err
	}

	available, err := s.inventory.CheckAvailability(ctx, session, req.SeatCodes)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Compute(seats, customer.Plan)
	resp := &response.QuoteResponse{
		SessionID:  session.ID,
		NationalID: customer.NationalID,
		Plan:       response.PlanToResponse(customer.Plan),
		SeatCodes:  req.SeatCodes,
		Subtotal:   quote.Subtotal.StringFixed(2),
		Discount:   quote.Discount.StringFixed(2),
		Total:      quote.Total.StringFixed(2),
		Available:  available,
	}
	if quote.Warning != nil {
		resp.Warning = quote.Warning.String()
	}
	return resp, nil
}

func (s *reservationService) resolve(ctx context.Context, sessionID, nationalID string) (*entity.Session, *entity.Customer, error) {
	session, err := s.repo.Session.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, lookupError("session", sessionID, err)
	}

	nationalID = utils.NormalizeNationalID(nationalID)
	customer, err := s.repo.Customer.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, nil, lookupError("customer", nationalID, err)
	}

	return session, customer, nil
}

func lookupError(kind, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("%w: find %s %s: %w", ErrPersistence, kind, id, err)
}
