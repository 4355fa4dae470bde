package models

import "time"

// Customer represents a customer account.
type Customer struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Admin        bool      `bson:"admin,omitempty" json:"admin,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// ContactSnapshot copies the customer's current contact details for embedding
// into a new booking.
func (c *Customer) ContactSnapshot() ContactSnapshot {
	return ContactSnapshot{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}
