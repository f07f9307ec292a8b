package seed

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"memeboard/internal/models"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays bounds how far into the past post timestamps are spread.
	MaxDays int
	// SkipBcrypt stores seed passwords in plain text for faster bulk runs.
	SkipBcrypt bool
}

// Seed populates the database with demo users and posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Printf("Warning: could not clear existing data, continuing anyway: %v", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create seed user: %v", err)
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("failed to create any users")
	}
	log.Printf("Created %d users", len(users))

	created := 0
	for i := 0; i < opts.NumPosts; i++ {
		user := users[factory.rand.Intn(len(users))]
		if _, err := factory.CreatePost(user); err != nil {
			log.Printf("Failed to create seed post: %v", err)
			continue
		}
		created++
	}
	log.Printf("Created %d posts", created)

	// A few users get an in-progress draft so the compose view has content.
	for i := 0; i < len(users) && i < 3; i++ {
		if _, err := factory.CreateDraft(users[i]); err != nil {
			log.Printf("Failed to create seed draft: %v", err)
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	return db.Exec(`TRUNCATE TABLE drafts, posts, users RESTART IDENTITY CASCADE;`).Error
}
