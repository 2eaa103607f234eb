package entity

import (
	"fmt"
	"strings"
	"time"
)

type Turno string

const (
	TurnoMorning   Turno = "morning"
	TurnoAfternoon Turno = "afternoon"
	TurnoEvening   Turno = "evening"
)

var turnoDisplayTimes = map[Turno]string{
	TurnoMorning:   "10:00",
	TurnoAfternoon: "15:00",
	TurnoEvening:   "20:00",
}

// DisplayTime returns the canonical showtime printed for the turno.
func (t Turno) DisplayTime() string {
	return turnoDisplayTimes[t]
}

func ParseTurno(s string) (Turno, error) {
	t := Turno(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := turnoDisplayTimes[t]; !ok {
		return "", fmt.Errorf("invalid turno %q", s)
	}
	return t, nil
}

type Play struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Subtitle  string `db:"subtitle"`
	Color     string `db:"color"`
	ImagePath string `db:"image_path"`
}

type Session struct {
	ID       string    `db:"id"`
	Play     Play      `db:"-"`
	StartsAt time.Time `db:"starts_at"`
	Turno    Turno     `db:"turno"`
}
