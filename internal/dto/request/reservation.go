package request

type CreateReservationRequest struct {
	SessionID  string   `json:"session_id" validate:"required,max=64"`
	NationalID string   `json:"national_id" validate:"required,nationalid"`
	SeatCodes  []string `json:"seat_codes" validate:"required,min=1,max=40,unique,dive,required,seatcode"`
}

// QuoteRequest previews the price of a selection without reserving it.
type QuoteRequest struct {
	SessionID  string   `json:"session_id" validate:"required,max=64"`
	NationalID string   `json:"national_id" validate:"required,nationalid"`
	SeatCodes  []string `json:"seat_codes" validate:"required,min=1,max=40,unique,dive,required,seatcode"`
}
