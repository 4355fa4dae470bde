package customer

import (
	"context"

	"salonhub/models"
)

// RegistrationInput carries a new customer signup.
type RegistrationInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// AuthResult is a successful login: the account plus a fresh token.
type AuthResult struct {
	Customer *models.Customer `json:"customer"`
	Token    string           `json:"token"`
}

// CustomerService manages customer accounts.
type CustomerService interface {
	Register(ctx context.Context, in RegistrationInput) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Customer, error)
}
