// Command main runs the demo data seeder for the campus forum.
package main

import (
	"flag"
	"log"

	"campusforum/internal/config"
	"campusforum/internal/database"
	"campusforum/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	comments := flag.Int("comments", 5, "Comments per post")
	replyRatio := flag.Int("reply-ratio", 40, "Percentage of comments that are replies")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing to the database")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, %d comments/post, clean=%v", *numUsers, *numPosts, *comments, *shouldClean)

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

	s := seed.NewSeeder(db, seed.Options{DryRun: *dryRun, SkipBcrypt: !cfg.IsProduction()})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.Run(seed.Plan{
		Users:           *numUsers,
		Posts:           *numPosts,
		CommentsPerPost: *comments,
		ReplyRatio:      *replyRatio,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. Every seeded user has the password: %s", seed.DefaultPassword)
}
