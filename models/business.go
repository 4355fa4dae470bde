package models

import "time"

// SalonService is one entry in a business's service catalogue.
type SalonService struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Description     string  `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Category        string  `bson:"category,omitempty" json:"category,omitempty"`
	Active          bool    `bson:"active" json:"active"`
}

// Business represents a salon account on the marketplace.
type Business struct {
	ID           string         `bson:"id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash string         `bson:"password_hash" json:"-"`
	Phone        string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string         `bson:"address,omitempty" json:"address,omitempty"`
	Description  string         `bson:"description,omitempty" json:"description,omitempty"`
	Services     []SalonService `bson:"services,omitempty" json:"services,omitempty"`
	FCMToken     string         `bson:"fcm_token,omitempty" json:"-"`
	TokenHash    string         `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}

// ServiceByID returns the catalogue entry with the given id, if any.
func (b *Business) ServiceByID(serviceID string) *SalonService {
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			return &b.Services[i]
		}
	}
	return nil
}
