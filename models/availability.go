package models

// DayAvailability is one business's open slots for a single calendar date.
// Times are "HH:MM" strings kept sorted ascending with no duplicates; a time
// is present exactly when no active booking holds it.
type DayAvailability struct {
	BusinessID string   `bson:"business_id" json:"business_id"`
	Date       string   `bson:"date" json:"date"`
	Times      []string `bson:"times" json:"times"`
}
