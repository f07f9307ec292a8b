// Command seed populates the database with demo users and posts.
package main

import (
	"flag"
	"log"

	"memeboard/internal/config"
	"memeboard/internal/database"
	"memeboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "number of users to create")
	numPosts := flag.Int("posts", 100, "number of posts to create")
	maxDays := flag.Int("max-days", 90, "spread post timestamps over this many days")
	clean := flag.Bool("clean", false, "truncate existing data first")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store seed passwords unhashed (faster bulk runs)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		MaxDays:     *maxDays,
		ShouldClean: *clean,
		SkipBcrypt:  *skipBcrypt,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
