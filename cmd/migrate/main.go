// Command migrate applies the database schema. Connect already migrates in
// development and test; this command exists so production deploys can run the
// schema step explicitly.
package main

import (
	"log"

	"stayhub/internal/config"
	"stayhub/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration complete")
}
