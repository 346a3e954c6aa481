package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"

	"github.com/crewdesk/crewdesk/internal/app"
	"github.com/crewdesk/crewdesk/internal/platform/db"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.New(context.Background(), cfg.PGDSN)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pool.Close()

	dtb := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(dtb, "migrations"); err != nil {
		log.Fatal(err)
	}

	log.Println("Migrations applied successfully")
}
