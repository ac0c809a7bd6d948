// Package validation checks user-supplied fields before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"campusforum/internal/models"
)

const (
	// MaxUsernameLength matches the users.username column width.
	MaxUsernameLength = 50
	// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
	MaxPasswordBytes = 72
)

// ErrTitleTooLong is the message returned for over-long post titles.
const ErrTitleTooLong = "Titre ne peut pas exceder 50 charactere"

// ValidateUsername rejects empty, whitespace-padded, or over-long usernames.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("Le nom d'utilisateur est requis.")
	}
	if strings.TrimSpace(username) != username {
		return errors.New("Le nom d'utilisateur ne peut pas commencer ou finir par un espace.")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("Le nom d'utilisateur ne peut pas exceder %d caracteres.", MaxUsernameLength)
	}
	return nil
}

// ValidatePassword rejects empty passwords and inputs bcrypt cannot hash in full.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("Le mot de passe est requis.")
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("Le mot de passe ne peut pas exceder %d octets.", MaxPasswordBytes)
	}
	return nil
}

// ValidateTitle rejects titles longer than models.MaxTitleLength characters.
// Emptiness is handled by the caller.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return errors.New(ErrTitleTooLong)
	}
	return nil
}
