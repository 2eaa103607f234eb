package database

import (
	"context"
	"fmt"
)

// ticket_seats is keyed by (session_id, seat_code): a seat can be claimed by
// at most one ticket per session, whatever the application does.
const schema = `
CREATE TABLE IF NOT EXISTS plays (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	subtitle   TEXT NOT NULL DEFAULT '',
	color      TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sessions (
	id        TEXT PRIMARY KEY,
	play_id   TEXT NOT NULL REFERENCES plays (id),
	starts_at TIMESTAMPTZ NOT NULL,
	turno     TEXT NOT NULL CHECK (turno IN ('morning', 'afternoon', 'evening'))
);

CREATE TABLE IF NOT EXISTS customers (
	national_id  TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	loyalty_plan TEXT NOT NULL DEFAULT 'none'
);

CREATE TABLE IF NOT EXISTS tickets (
	id                   UUID PRIMARY KEY,
	barcode              TEXT NOT NULL UNIQUE,
	session_id           TEXT NOT NULL,
	customer_national_id TEXT NOT NULL,
	subtotal             NUMERIC(12, 2) NOT NULL,
	discount_amount      NUMERIC(12, 2) NOT NULL,
	total                NUMERIC(12, 2) NOT NULL CHECK (total = subtotal - discount_amount),
	purchased_at         TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tickets_customer_idx ON tickets (customer_national_id, purchased_at);

CREATE TABLE IF NOT EXISTS ticket_seats (
	session_id  TEXT NOT NULL,
	seat_code   TEXT NOT NULL,
	ticket_id   UUID NOT NULL REFERENCES tickets (id),
	position    INT NOT NULL,
	row_number  INT NOT NULL,
	seat_number INT NOT NULL,
	category    TEXT NOT NULL,
	price       NUMERIC(12, 2) NOT NULL,
	PRIMARY KEY (session_id, seat_code)
);

CREATE INDEX IF NOT EXISTS ticket_seats_ticket_idx ON ticket_seats (ticket_id);
`

// InitializeSchema creates the tables if they do not exist
func InitializeSchema(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}
