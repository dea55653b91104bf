package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the proposal tables
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// PROPOSALS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS proposals (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			public_token VARCHAR(64) UNIQUE NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			currency VARCHAR(3) NOT NULL DEFAULT 'BRL',
			secondary_currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			travelers_count INT NOT NULL DEFAULT 1,
			cover_image_url TEXT NULL,
			active_version_id UUID NULL,
			accepted_at TIMESTAMPTZ NULL,
			accepted_total NUMERIC NULL,
			accepted_version_id UUID NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// VERSIONS (IMMUTABLE SNAPSHOTS)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS proposal_versions (
			id UUID PRIMARY KEY,
			proposal_id UUID NOT NULL REFERENCES proposals(id),
			version_number INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// -------------------------------
		// SECTIONS / ITEMS / OPTIONS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS proposal_sections (
			id UUID PRIMARY KEY,
			version_id UUID NOT NULL REFERENCES proposal_versions(id),
			section_type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			position INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS proposal_items (
			id UUID PRIMARY KEY,
			section_id UUID NOT NULL REFERENCES proposal_sections(id),
			item_type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			base_price NUMERIC NOT NULL DEFAULT 0,
			is_optional BOOLEAN NOT NULL DEFAULT FALSE,
			is_default_selected BOOLEAN NOT NULL DEFAULT FALSE,
			image_url TEXT NULL,
			rich_content JSONB NULL,
			position INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS proposal_options (
			id UUID PRIMARY KEY,
			item_id UUID NOT NULL REFERENCES proposal_items(id),
			option_label VARCHAR(255) NOT NULL DEFAULT '',
			price_delta NUMERIC NOT NULL DEFAULT 0,
			position INT NOT NULL DEFAULT 0
		)`,

		// -------------------------------
		// CLIENT SELECTIONS (UPSERT KEY)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS proposal_client_selections (
			proposal_id UUID NOT NULL REFERENCES proposals(id),
			item_id UUID NOT NULL REFERENCES proposal_items(id),
			selected BOOLEAN NOT NULL DEFAULT TRUE,
			option_id UUID NULL,
			selection_metadata JSONB NULL,
			selected_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (proposal_id, item_id)
		)`,

		// -------------------------------
		// EVENT LOG
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS proposal_events (
			id UUID PRIMARY KEY,
			proposal_id UUID NOT NULL REFERENCES proposals(id),
			event_type VARCHAR(100) NOT NULL,
			payload JSONB NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_proposal_events_proposal
			ON proposal_events (proposal_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
