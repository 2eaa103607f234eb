package repository

import (
	"context"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/pkg/database"
)

var demoPlays = []entity.Play{
	{ID: "hamlet", Title: "Hamlet", Subtitle: "The Prince of Denmark", Color: "#3B2F63", ImagePath: "images/hamlet.png"},
	{ID: "auto-da-compadecida", Title: "O Auto da Compadecida", Subtitle: "A comedy of the sertao", Color: "#C2571A", ImagePath: "images/auto.png"},
}

// DemoSessions returns one session per turno for each demo play on the
// following day.
func DemoSessions() []entity.Session {
	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	turnos := []entity.Turno{entity.TurnoMorning, entity.TurnoAfternoon, entity.TurnoEvening}

	var sessions []entity.Session
	for _, play := range demoPlays {
		for _, turno := range turnos {
			at, _ := time.Parse("15:04", turno.DisplayTime())
			sessions = append(sessions, entity.Session{
				ID:       fmt.Sprintf("%s-%s", play.ID, turno),
				Play:     play,
				StartsAt: day.Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute),
				Turno:    turno,
			})
		}
	}
	return sessions
}

func DemoCustomers() []entity.Customer {
	return []entity.Customer{
		{NationalID: "11144477735", Name: "Ana Souza", Plan: entity.PlanGold},
		{NationalID: "52998224725", Name: "Bruno Lima", Plan: entity.PlanStandard},
		{NationalID: "39053344705", Name: "Carla Dias", Plan: entity.PlanNone},
	}
}

// SeedDemoData inserts the demo plays, sessions and customers, leaving
// existing rows untouched.
func SeedDemoData(ctx context.Context, db database.PgxIface) error {
	for _, p := range demoPlays {
		_, err := db.Exec(ctx, `
			INSERT INTO plays (id, title, subtitle, color, image_path)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Title, p.Subtitle, p.Color, p.ImagePath)
		if err != nil {
			return fmt.Errorf("seed play %s: %w", p.ID, err)
		}
	}

	for _, s := range DemoSessions() {
		_, err := db.Exec(ctx, `
			INSERT INTO sessions (id, play_id, starts_at, turno)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, s.ID, s.Play.ID, s.StartsAt, string(s.Turno))
		if err != nil {
			return fmt.Errorf("seed session %s: %w", s.ID, err)
		}
	}

	for _, c := range DemoCustomers() {
		_, err := db.Exec(ctx, `
			INSERT INTO customers (national_id, name, loyalty_plan)
			VALUES ($1, $2, $3)
			ON CONFLICT (national_id) DO NOTHING
		`, c.NationalID, c.Name, string(c.Plan.ID))
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.NationalID, err)
		}
	}

	return nil
}
