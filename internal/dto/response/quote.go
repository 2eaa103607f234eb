package response

import "theater-booking/internal/data/entity"

type QuoteResponse struct {
	SessionID  string       `json:"session_id"`
	NationalID string       `json:"national_id"`
	Plan       PlanResponse `json:"plan"`
	SeatCodes  []string     `json:"seat_codes"`
	Subtotal   string       `json:"subtotal"`
	Discount   string       `json:"discount"`
	Total      string       `json:"total"`
	Available  bool         `json:"available"`
	Warning    string       `json:"warning,omitempty"`
}

type PlanResponse struct {
	ID       entity.PlanID `json:"id"`
	Name     string        `json:"name"`
	Benefits string        `json:"benefits"`
}

func PlanToResponse(p entity.LoyaltyPlan) PlanResponse {
	return PlanResponse{
		ID:       p.ID,
		Name:     p.Name,
		Benefits: p.Benefits,
	}
}
