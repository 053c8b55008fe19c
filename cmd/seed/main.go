// Command main runs the database seeder for StayHub.
package main

import (
	"flag"
	"log"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/seed"
)

func main() {
	numHosts := flag.Int("hosts", 10, "Number of host accounts to create")
	numGuests := flag.Int("guests", 40, "Number of guest accounts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d hosts, %d guests, clean=%v\n", *numHosts, *numGuests, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	opts := seed.DefaultOptions()
	opts.NumHosts = *numHosts
	opts.NumGuests = *numGuests
	if err := s.SeedMarketplace(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Printf("All seeded accounts use the password: %s", seed.DefaultPassword)
}
