// Command migrate applies the database schema.
package main

import (
	"log"

	"github.com/SumiranBhawsar/youtube-clone/internal/config"
	"github.com/SumiranBhawsar/youtube-clone/internal/database"
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

	// Connect already migrates outside production; run explicitly so the
	// command behaves the same in every environment.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration completed")
}
