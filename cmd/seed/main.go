// Command main runs the database seeder for VideoTube.
package main

import (
	"flag"
	"log"

	"github.com/SumiranBhawsar/youtube-clone/internal/config"
	"github.com/SumiranBhawsar/youtube-clone/internal/database"
	"github.com/SumiranBhawsar/youtube-clone/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 15, "Number of users to create")
	videosPerUser := flag.Int("videos", 4, "Approximate videos per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	flag.Parse()

	log.Printf("Seeder target: %d users, ~%d videos each, clean=%v", *numUsers, *videosPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:      *numUsers,
		VideosPerUser: *videosPerUser,
		SkipBcrypt:    *skipBcrypt,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Every seeded user has the password: password123")
}
