package seed

import (
	"fmt"
	"log"

	"campusforum/internal/models"

	"gorm.io/gorm"
)

// Plan sizes one seeding run.
type Plan struct {
	Users           int
	Posts           int
	CommentsPerPost int
	// ReplyRatio is the share, in percent, of comments that answer an earlier
	// comment of the same post instead of the post itself.
	ReplyRatio int
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Posts    int
	Comments int
	Replies  int
}

// Seeder fills the database with demo users, posts and comment threads.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder writing through db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll deletes every comment, post and user, children first.
func (s *Seeder) ClearAll() error {
	if s.factory.opts.DryRun {
		log.Println("[dry-run] ClearAll skipped")
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Replies reference comments of the same table; detach them first.
		if err := tx.Model(&models.Comment{}).Where("parent_id IS NOT NULL").Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach replies: %w", err)
		}
		for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run creates the users, posts and threads described by plan.
func (s *Seeder) Run(plan Plan) (Summary, error) {
	var sum Summary
	if plan.Users <= 0 {
		return sum, fmt.Errorf("at least one user is required")
	}
	f := s.factory

	users := make([]*models.User, 0, plan.Users)
	for i := 0; i < plan.Users; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return sum, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)

	pick := func() *models.User {
		return users[f.faker.Number(0, len(users)-1)]
	}

	for i := 0; i < plan.Posts; i++ {
		post, err := f.CreatePost(pick())
		if err != nil {
			return sum, fmt.Errorf("create post: %w", err)
		}
		sum.Posts++

		var thread []*models.Comment
		for j := 0; j < plan.CommentsPerPost; j++ {
			var c *models.Comment
			if len(thread) > 0 && f.faker.Number(1, 100) <= plan.ReplyRatio {
				parent := thread[f.faker.Number(0, len(thread)-1)]
				c, err = f.CreateReply(pick(), parent)
				if err == nil {
					sum.Replies++
				}
			} else {
				c, err = f.CreateComment(pick(), post)
			}
			if err != nil {
				return sum, fmt.Errorf("create comment: %w", err)
			}
			sum.Comments++
			thread = append(thread, c)
		}
	}

	log.Printf("Seeded %d users, %d posts, %d comments (%d replies)", sum.Users, sum.Posts, sum.Comments, sum.Replies)
	return sum, nil
}
