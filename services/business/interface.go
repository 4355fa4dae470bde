package business

import (
	"context"

	"salonhub/models"
)

// RegistrationInput carries a new salon signup.
type RegistrationInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// AuthResult is a successful login: the account plus a fresh token.
type AuthResult struct {
	Business *models.Business `json:"business"`
	Token    string           `json:"token"`
}

// BusinessService manages salon accounts, their catalogues, and their
// published availability.
type BusinessService interface {
	Register(ctx context.Context, in RegistrationInput) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Business, error)

	AddService(ctx context.Context, businessID string, svc models.SalonService) (*models.SalonService, error)
	UpdateService(ctx context.Context, businessID string, svc models.SalonService) error
	RemoveService(ctx context.Context, businessID, serviceID string) error

	// PublishAvailability replaces one day's open slots. Owner-only; the
	// booking path never replaces a day wholesale.
	PublishAvailability(ctx context.Context, businessID, date string, times []string) error
}
