package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityRepo "salonhub/database/repository/availability"
	businessRepo "salonhub/database/repository/business"
	"salonhub/models"
	"salonhub/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 72 * time.Hour

// DefaultBusinessService is the production implementation.
type DefaultBusinessService struct {
	Repo         businessRepo.BusinessRepository
	Availability availabilityRepo.AvailabilityRepository
}

// Register creates a salon account and signs it in.
func (s *DefaultBusinessService) Register(ctx context.Context, in RegistrationInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	b := &models.Business{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return s.issueToken(ctx, b)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultBusinessService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	b, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(b.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, b)
}

func (s *DefaultBusinessService) issueToken(ctx context.Context, b *models.Business) (*AuthResult, error) {
	token, err := utils.GenerateToken(b.ID, b.Email, "business", tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.SetTokenHash(ctx, b.ID, utils.HashToken(token)); err != nil {
		return nil, err
	}
	return &AuthResult{Business: b, Token: token}, nil
}

func (s *DefaultBusinessService) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultBusinessService) Update(ctx context.Context, business *models.Business) error {
	return s.Repo.Update(ctx, business)
}

func (s *DefaultBusinessService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultBusinessService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.SetFCMToken(ctx, id, token)
}

// RevokeToken clears the stored token hash, signing the business out everywhere.
// RevokeToken clears the stored token hash and evicts it from the auth
// cache, invalidating the active session at once.
func (s *DefaultBusinessService) RevokeToken(ctx context.Context, id string) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.SetTokenHash(ctx, id, ""); err != nil {
		return err
	}
	utils.DropAuthCacheEntry(ctx, "business", b.TokenHash)
	return nil
}

func (s *DefaultBusinessService) ListAll(ctx context.Context) ([]models.Business, error) {
	return s.Repo.ListAll(ctx)
}

// AddService validates and appends a catalogue entry. Existing bookings keep
// the snapshot they were created with.
func (s *DefaultBusinessService) AddService(ctx context.Context, businessID string, svc models.SalonService) (*models.SalonService, error) {
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	svc.ID = uuid.New().String()
	svc.Active = true
	if err := s.Repo.AddService(ctx, businessID, svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *DefaultBusinessService) UpdateService(ctx context.Context, businessID string, svc models.SalonService) error {
	if svc.ID == "" {
		return models.ValidationError{Field: "service.id", Reason: "must not be empty"}
	}
	if err := validateService(&svc); err != nil {
		return err
	}
	return s.Repo.UpdateService(ctx, businessID, svc)
}

func (s *DefaultBusinessService) RemoveService(ctx context.Context, businessID, serviceID string) error {
	return s.Repo.RemoveService(ctx, businessID, serviceID)
}

func validateService(svc *models.SalonService) error {
	if svc.Name == "" {
		return models.ValidationError{Field: "service.name", Reason: "must not be empty"}
	}
	if svc.Price < 0 {
		return models.ValidationError{Field: "service.price", Reason: "must not be negative"}
	}
	if svc.DurationMinutes <= 0 {
		return models.ValidationError{Field: "service.duration_minutes", Reason: "must be positive"}
	}
	return nil
}

// PublishAvailability validates and stores one day's schedule.
func (s *DefaultBusinessService) PublishAvailability(ctx context.Context, businessID, date string, times []string) error {
	if !models.ValidDate(date) {
		return models.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	for _, t := range times {
		if !models.ValidTimeOfDay(t) {
			return models.ValidationError{Field: "times", Reason: fmt.Sprintf("%q is not a 24-hour HH:MM time", t)}
		}
	}
	return s.Availability.SetSlots(ctx, businessID, date, times)
}
