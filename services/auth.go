package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ClinicCare360/models"
)

// AuthService stores and verifies login credentials. It issues no tokens;
// login only confirms the password against the stored bcrypt hash.
type AuthService struct {
	store models.UserStore
}

func NewAuthService(store models.UserStore) *AuthService {
	return &AuthService{store: store}
}

/*
* Username and password must both be present
* Reject a username that already has a credential record
* Hash the password with bcrypt and save the user
 */
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrMissingInput
	}

	_, err := s.store.FindByUsername(ctx, username)
	if err == nil {
		return nil, models.ErrUserExists
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.Println("Error from FindByUsername:", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Error from GenerateFromPassword:", err)
		return nil, err
	}
	return s.store.Insert(ctx, &models.User{Username: username, Password: string(hash)})
}

/*
* Username and password must both be present
* An unknown user and a wrong password look identical to the caller
 */
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrMissingInput
	}

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		log.Println("Error from FindByUsername:", err)
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}
