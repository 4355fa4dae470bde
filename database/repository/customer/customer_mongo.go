package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo creates a new instance of CustomerRepository using MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	coll := database.DB().Collection("customers")
	repo := &MongoCustomerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create customer indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCustomerRepo) ensureIndexes() error {
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

func (r *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoCustomerRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"token_hash": tokenHash})
}

func (r *MongoCustomerRepo) findOne(ctx context.Context, filter bson.M) (*models.Customer, error) {
	var customer models.Customer
	if err := r.coll.FindOne(ctx, filter).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("error fetching customer: %w", err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	update := bson.M{"$set": bson.M{
		"name":       customer.Name,
		"phone":      customer.Phone,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": customer.ID}, update)
	if err != nil {
		return fmt.Errorf("error updating customer %s: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *MongoCustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting customer %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *MongoCustomerRepo) ListAll(ctx context.Context) ([]models.Customer, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("error decoding customers: %w", err)
	}
	return customers, nil
}

func (r *MongoCustomerRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.setField(ctx, id, "token_hash", tokenHash)
}

func (r *MongoCustomerRepo) SetFCMToken(ctx context.Context, id, token string) error {
	return r.setField(ctx, id, "fcm_token", token)
}

func (r *MongoCustomerRepo) setField(ctx context.Context, id, field string, value interface{}) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("error updating %s of customer %s: %w", field, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
