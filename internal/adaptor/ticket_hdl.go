package adaptor

import (
	"net/http"

	"theater-booking/internal/dto/request"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// GetTicket handles GET /api/tickets/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.handleServiceError(w, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetBarcode handles GET /api/tickets/{id}/barcode.png
func (h *TicketHandler) GetBarcode(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")

	img, err := h.service.GetBarcodePNG(r.Context(), ticketID)
	if err != nil {
		h.handleServiceError(w, err, "get ticket barcode")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.log.Warn("Failed to write barcode image", zap.Error(err))
	}
}

// GetCustomerTickets handles GET /api/customers/{nationalId}/tickets
func (h *TicketHandler) GetCustomerTickets(w http.ResponseWriter, r *http.Request) {
	nationalID := chi.URLParam(r, "nationalId")

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	tickets, err := h.service.ListTicketsByCustomer(r.Context(), nationalID, req)
	if err != nil {
		h.handleServiceError(w, err, "get customer tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

func (h *TicketHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(h.log, w, err, operation)
}
