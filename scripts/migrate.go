// Creates the persons table on the database named by DATABASE_URL.
//
//	go run scripts/migrate.go
package main

import (
	"context"
	"fmt"
	"log"

	"phonebook/internal/config"
	"phonebook/internal/server/database"
)

func main() {
	cfg := config.LoadServer()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	fmt.Println("Running migration: CREATE TABLE persons...")
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("Migration successful!")
}
