package availabilityRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"salonhub/database"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
// Each document is one (business, date) pair holding the open times array.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.DB().Collection("availability")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create availability indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique (business_id, date) index. AddSlot relies
// on it to detect the already-present case on the upsert path.
func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListSlots fetches the open times for a business on a date. A missing
// document simply means nothing is open.
func (r *MongoAvailabilityRepo) ListSlots(ctx context.Context, businessID, date string) ([]string, error) {
	var day models.DayAvailability
	filter := bson.M{"business_id": businessID, "date": date}
	if err := r.coll.FindOne(ctx, filter).Decode(&day); err != nil {
		if err == mongo.ErrNoDocuments {
			return []string{}, nil
		}
		return nil, fmt.Errorf("error fetching availability for business %s on %s: %w", businessID, date, err)
	}
	if day.Times == nil {
		return []string{}, nil
	}
	return day.Times, nil
}

// RemoveSlot pulls the time out of the day's array with a filter that
// requires it to still be present. The single conditional UpdateOne is what
// keeps two concurrent reservations from both succeeding: only one caller
// can match the document while the time is in the array.
func (r *MongoAvailabilityRepo) RemoveSlot(ctx context.Context, businessID, date, timeOfDay string) error {
	filter := bson.M{"business_id": businessID, "date": date, "times": timeOfDay}
	update := bson.M{"$pull": bson.M{"times": timeOfDay}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error removing slot %s %s for business %s: %w", date, timeOfDay, businessID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// AddSlot pushes the time into the day's array, sorted, guarded by a $ne
// filter so an already-present time matches nothing. With upsert enabled the
// no-match case either creates the day document or trips the unique
// (business_id, date) index when the day exists with the time already in it;
// the duplicate-key error is the idempotent-success case.
func (r *MongoAvailabilityRepo) AddSlot(ctx context.Context, businessID, date, timeOfDay string) error {
	filter := bson.M{"business_id": businessID, "date": date, "times": bson.M{"$ne": timeOfDay}}
	update := bson.M{"$push": bson.M{"times": bson.M{"$each": bson.A{timeOfDay}, "$sort": 1}}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("error restoring slot %s %s for business %s: %w", date, timeOfDay, businessID, err)
	}
	return nil
}

// SetSlots replaces one day's published schedule. Only the owner setup path
// uses this; booking-path mutations go through RemoveSlot/AddSlot so that
// concurrent reservations are never overwritten wholesale.
func (r *MongoAvailabilityRepo) SetSlots(ctx context.Context, businessID, date string, times []string) error {
	cleaned := normalizeTimes(times)

	day := models.DayAvailability{BusinessID: businessID, Date: date, Times: cleaned}
	filter := bson.M{"business_id": businessID, "date": date}
	_, err := r.coll.ReplaceOne(ctx, filter, day, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error publishing availability for business %s on %s: %w", businessID, date, err)
	}
	return nil
}

// normalizeTimes dedupes and sorts a schedule ascending.
func normalizeTimes(times []string) []string {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
