package businessRepo

import (
	"context"
	"errors"

	"salonhub/models"
)

// ErrBusinessNotFound is returned when no business matches the query.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository persists salon accounts and their service catalogues.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetByEmail(ctx context.Context, email string) (*models.Business, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Business, error)

	SetTokenHash(ctx context.Context, id, tokenHash string) error
	SetFCMToken(ctx context.Context, id, token string) error

	// Catalogue mutations; historical bookings keep their snapshots.
	AddService(ctx context.Context, businessID string, svc models.SalonService) error
	UpdateService(ctx context.Context, businessID string, svc models.SalonService) error
	RemoveService(ctx context.Context, businessID, serviceID string) error
}
