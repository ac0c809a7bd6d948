// Package seed provides helpers to create demo data for the forum database.
// These helpers are intended for development and testing only.
package seed

import (
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"campusforum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password given to every seeded user.
const DefaultPassword = "password123"

// Options configures the seeder and its factory.
type Options struct {
	// DryRun builds entities with synthetic ids and never touches the database.
	DryRun bool
	// SkipBcrypt stores a cheap-cost hash instead of a default-cost one.
	SkipBcrypt bool
	// MaxDays bounds how far back generated timestamps are spread.
	MaxDays int
	// Seed makes generated content reproducible when non-zero.
	Seed int64
}

// Factory builds forum entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	// synthetic ID counter when running in DryRun mode
	nextID uint
	hashed string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), nextID: 1000}
}

func (f *Factory) passwordHash() (string, error) {
	if f.hashed != "" {
		return f.hashed, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", err
	}
	f.hashed = string(hashed)
	return f.hashed, nil
}

// createdAt returns a timestamp spread over the last MaxDays days.
func (f *Factory) createdAt() time.Time {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// title returns a sentence that fits the post title limit.
func (f *Factory) title() string {
	t := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(2, 6)), ".")
	for utf8.RuneCountInString(t) > models.MaxTitleLength {
		t = string([]rune(t)[:models.MaxTitleLength])
		t = strings.TrimSpace(t)
	}
	return t
}

func (f *Factory) persist(value any, id *uint, what string) error {
	if f.opts.DryRun {
		f.nextID++
		*id = f.nextID
		log.Printf("[dry-run] %s id=%d (no DB write)", what, *id)
		return nil
	}
	return f.db.Create(value).Error
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := f.passwordHash()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  f.faker.Username() + f.faker.DigitN(3),
		Password:  hashed,
		CreatedAt: f.createdAt(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.persist(user, &user.ID, "CreateUser"); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post authored by user without persisting it.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:     f.title(),
		Content:   f.faker.Paragraph(1, 3, 8, "\n"),
		UserID:    user.ID,
		CreatedAt: f.createdAt(),
	}
	if post.CreatedAt.Before(user.CreatedAt) {
		post.CreatedAt = user.CreatedAt
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.persist(post, &post.ID, "CreatePost"); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a top-level comment on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   f.faker.Sentence(f.faker.Number(4, 16)),
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: after(post.CreatedAt, f.faker.Number(1, 72*60)),
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.persist(comment, &comment.ID, "CreateComment"); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReply constructs and persists a reply to parent on the parent's post.
func (f *Factory) CreateReply(user *models.User, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	parentID := parent.ID
	return f.CreateComment(user, &models.Post{ID: parent.PostID, CreatedAt: parent.CreatedAt}, append([]func(*models.Comment){
		func(c *models.Comment) {
			c.ParentID = &parentID
			c.Content = f.faker.Sentence(f.faker.Number(2, 10))
		},
	}, overrides...)...)
}

// after returns t moved forward by minutes, capped at now.
func after(t time.Time, minutes int) time.Time {
	out := t.Add(time.Duration(minutes) * time.Minute)
	if now := time.Now(); out.After(now) {
		return now
	}
	return out
}
