package service

import (
	"context"
	"fmt"

	"campusforum/internal/models"
	"campusforum/internal/observability"
	"campusforum/internal/repository"
	"campusforum/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// User-facing messages for the signup and login flows.
const (
	MsgInvalidCredentials = "Invalid Credentials. Please try again."
	MsgPasswordMismatch   = "Les mots de pass ne sont pas identiques."
	MsgUsernameTaken      = "Ce nom d'utilisateur est deja pris, veuillez en choisir un autre. "
	MsgSignupSuccess      = "Utilisateur créé avec succès."
)

type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

type SignupInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// Signup registers a new user. The username is stored exactly as given.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError(MsgPasswordMismatch)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError(MsgUsernameTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{Username: in.Username, Password: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return nil, models.NewConflictError(MsgUsernameTaken)
		}
		return nil, err
	}
	observability.RecordWrite("user")
	return user, nil
}

// Login returns the user whose username matches exactly and whose password
// verifies against the stored hash.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
	}
	return user, nil
}

// GetUser returns the user with id.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
