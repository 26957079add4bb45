package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so the server can bootstrap a fresh
// database and restart against an existing one.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		telegram_id bigint NOT NULL UNIQUE,
		username varchar(255) NOT NULL DEFAULT '',
		first_name varchar(255) NOT NULL DEFAULT '',
		phone varchar(20) NOT NULL DEFAULT '',
		role varchar(16) NOT NULL DEFAULT 'client',
		consent_given boolean NOT NULL DEFAULT false,
		consent_date timestamptz,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS salon_info (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name varchar(255) NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		address varchar(500) NOT NULL DEFAULT '',
		phone varchar(20) NOT NULL DEFAULT '',
		working_hours_text varchar(500) NOT NULL DEFAULT '',
		preparation_text text NOT NULL DEFAULT '',
		instagram varchar(500) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS faq_items (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		question text NOT NULL,
		answer text NOT NULL,
		order_index int NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name varchar(255) NOT NULL,
		short_description text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		duration_minutes int NOT NULL DEFAULT 30,
		price numeric(10,2) NOT NULL DEFAULT 0,
		is_active boolean NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		date date NOT NULL,
		start_time time NOT NULL,
		end_time time NOT NULL,
		status varchar(16) NOT NULL DEFAULT 'available',
		CONSTRAINT uq_slot_datetime UNIQUE (date, start_time, end_time)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_slot_date_status ON slots (date, status)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		client_id uuid NOT NULL REFERENCES users(id),
		service_id uuid NOT NULL REFERENCES services(id),
		slot_id uuid NOT NULL UNIQUE REFERENCES slots(id),
		status varchar(16) NOT NULL DEFAULT 'confirmed',
		remind_before_hours int NOT NULL DEFAULT 2,
		reminded boolean NOT NULL DEFAULT false,
		feedback_sent boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_booking_client ON bookings (client_id)`,
	`CREATE INDEX IF NOT EXISTS ix_booking_status_reminded ON bookings (status, reminded)`,
	`CREATE TABLE IF NOT EXISTS schedule_templates (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		day_of_week int NOT NULL UNIQUE,
		start_time time NOT NULL,
		end_time time NOT NULL,
		interval_minutes int NOT NULL,
		is_active boolean NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name varchar(255) NOT NULL,
		amount numeric(10,2) NOT NULL,
		month varchar(7) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_expense_month ON expenses (month)`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
