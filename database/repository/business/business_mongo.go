package businessRepo

import (
	"context"
	"fmt"
	"time"

	"salonhub/database"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo creates a new instance of BusinessRepository using MongoDB.
func NewMongoBusinessRepo() BusinessRepository {
	coll := database.DB().Collection("businesses")
	repo := &MongoBusinessRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create business indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBusinessRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token_hash", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBusinessRepo) Create(ctx context.Context, business *models.Business) error {
	if _, err := r.coll.InsertOne(ctx, business); err != nil {
		return fmt.Errorf("error creating business: %w", err)
	}
	return nil
}

func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBusinessRepo) GetByEmail(ctx context.Context, email string) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoBusinessRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"token_hash": tokenHash})
}

func (r *MongoBusinessRepo) findOne(ctx context.Context, filter bson.M) (*models.Business, error) {
	var business models.Business
	if err := r.coll.FindOne(ctx, filter).Decode(&business); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("error fetching business: %w", err)
	}
	return &business, nil
}

// Update replaces the profile fields of a business. The services array is
// mutated through the catalogue methods, not here.
func (r *MongoBusinessRepo) Update(ctx context.Context, business *models.Business) error {
	update := bson.M{"$set": bson.M{
		"name":        business.Name,
		"phone":       business.Phone,
		"address":     business.Address,
		"description": business.Description,
		"updated_at":  time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": business.ID}, update)
	if err != nil {
		return fmt.Errorf("error updating business %s: %w", business.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *MongoBusinessRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting business %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

func (r *MongoBusinessRepo) ListAll(ctx context.Context) ([]models.Business, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing businesses: %w", err)
	}
	defer cursor.Close(ctx)

	var businesses []models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("error decoding businesses: %w", err)
	}
	return businesses, nil
}

func (r *MongoBusinessRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.setField(ctx, id, "token_hash", tokenHash)
}

func (r *MongoBusinessRepo) SetFCMToken(ctx context.Context, id, token string) error {
	return r.setField(ctx, id, "fcm_token", token)
}

func (r *MongoBusinessRepo) setField(ctx context.Context, id, field string, value interface{}) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("error updating %s of business %s: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// AddService appends a catalogue entry.
func (r *MongoBusinessRepo) AddService(ctx context.Context, businessID string, svc models.SalonService) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": businessID},
		bson.M{"$push": bson.M{"services": svc}},
	)
	if err != nil {
		return fmt.Errorf("error adding service to business %s: %w", businessID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateService replaces one catalogue entry in place.
func (r *MongoBusinessRepo) UpdateService(ctx context.Context, businessID string, svc models.SalonService) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": businessID, "services.id": svc.ID},
		bson.M{"$set": bson.M{"services.$": svc}},
	)
	if err != nil {
		return fmt.Errorf("error updating service %s of business %s: %w", svc.ID, businessID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// RemoveService pulls one catalogue entry.
func (r *MongoBusinessRepo) RemoveService(ctx context.Context, businessID, serviceID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": businessID},
		bson.M{"$pull": bson.M{"services": bson.M{"id": serviceID}}},
	)
	if err != nil {
		return fmt.Errorf("error removing service %s of business %s: %w", serviceID, businessID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBusinessNotFound
	}
	return nil
}
