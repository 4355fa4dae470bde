package customerRepo

import (
	"context"
	"errors"

	"salonhub/models"
)

// ErrCustomerNotFound is returned when no customer matches the query.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository persists customer accounts.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Customer, error)

	SetTokenHash(ctx context.Context, id, tokenHash string) error
	SetFCMToken(ctx context.Context, id, token string) error
}
