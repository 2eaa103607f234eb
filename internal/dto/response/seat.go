package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type SeatResponse struct {
	Code     string            `json:"code"`
	Row      int               `json:"row"`
	Number   int               `json:"number"`
	Category entity.Category   `json:"category"`
	Price    string            `json:"price"`
	Status   entity.SeatStatus `json:"status"`
}

type SeatSummaryResponse struct {
	Total      int                     `json:"total"`
	Available  int                     `json:"available"`
	Occupied   int                     `json:"occupied"`
	ByCategory map[entity.Category]int `json:"available_by_category"`
}

type SessionResponse struct {
	ID          string       `json:"id"`
	Turno       entity.Turno `json:"turno"`
	DisplayTime string       `json:"display_time"`
	StartsAt    time.Time    `json:"starts_at"`
	Play        PlayResponse `json:"play"`
}

type PlayResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Color     string `json:"color,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

type SeatMapResponse struct {
	Session SessionResponse     `json:"session"`
	Summary SeatSummaryResponse `json:"summary"`
	Seats   []SeatResponse      `json:"seats"`
}

func SessionToResponse(s *entity.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Turno:       s.Turno,
		DisplayTime: s.Turno.DisplayTime(),
		StartsAt:    s.StartsAt,
		Play: PlayResponse{
			ID:        s.Play.ID,
			Title:     s.Play.Title,
			Subtitle:  s.Play.Subtitle,
			Color:     s.Play.Color,
			ImagePath: s.Play.ImagePath,
		},
	}
}

func SeatsToResponse(seats []entity.Seat) []SeatResponse {
	out := make([]SeatResponse, len(seats))
	for i, s := range seats {
		out[i] = SeatResponse{
			Code:     s.Code,
			Row:      s.Row,
			Number:   s.Number,
			Category: s.Category,
			Price:    s.BasePrice.StringFixed(2),
			Status:   s.Status,
		}
	}
	return out
}
