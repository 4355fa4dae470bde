package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	customerRepo "salonhub/database/repository/customer"
	"salonhub/models"
	"salonhub/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 72 * time.Hour

// DefaultCustomerService is the production implementation.
type DefaultCustomerService struct {
	Repo customerRepo.CustomerRepository
}

// Register creates a customer account and signs them in.
func (s *DefaultCustomerService) Register(ctx context.Context, in RegistrationInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	c := &models.Customer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return s.issueToken(ctx, c)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultCustomerService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	c, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, c)
}

func (s *DefaultCustomerService) issueToken(ctx context.Context, c *models.Customer) (*AuthResult, error) {
	role := "customer"
	if c.Admin {
		role = "admin"
	}
	token, err := utils.GenerateToken(c.ID, c.Email, role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.SetTokenHash(ctx, c.ID, utils.HashToken(token)); err != nil {
		return nil, err
	}
	return &AuthResult{Customer: c, Token: token}, nil
}

func (s *DefaultCustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCustomerService) Update(ctx context.Context, customer *models.Customer) error {
	return s.Repo.Update(ctx, customer)
}

func (s *DefaultCustomerService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultCustomerService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.SetFCMToken(ctx, id, token)
}

// RevokeToken clears the stored token hash, signing the customer out everywhere.
// RevokeToken clears the stored token hash and evicts it from the auth
// cache, invalidating the active session at once.
func (s *DefaultCustomerService) RevokeToken(ctx context.Context, id string) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.SetTokenHash(ctx, id, ""); err != nil {
		return err
	}
	utils.DropAuthCacheEntry(ctx, "customer", c.TokenHash)
	return nil
}

func (s *DefaultCustomerService) ListAll(ctx context.Context) ([]models.Customer, error) {
	return s.Repo.ListAll(ctx)
}
