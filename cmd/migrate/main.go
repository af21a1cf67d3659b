// Command migrate applies migrations/schema.sql to the database named
// by DATABASE_URL. The schema is idempotent (CREATE ... IF NOT EXISTS),
// so re-running is safe.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linksaver/linksaver/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{Level: "info", Pretty: true})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close(ctx)

	schema, err := os.ReadFile("migrations/schema.sql")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read schema file")
	}

	if _, err := conn.Exec(ctx, string(schema)); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Msg("migrations applied")
}
