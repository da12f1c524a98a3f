package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"caregrid/database"
	"caregrid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// confirmed is the only booking status that counts as childcare being
// arranged.
const confirmedStatus = "confirmed"

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoBookingRepo{coll: db.Collection("childcare_bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// HasChildcareBooking checks for a confirmed booking on one date.
func (repo *MongoBookingRepo) HasChildcareBooking(userID, date string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "date": date, "status": confirmedStatus}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error checking childcare booking for %s: %w", date, err)
	}
	return count > 0, nil
}

// ChildcareMap resolves all requested dates in a single query.
func (repo *MongoBookingRepo) ChildcareMap(userID string, dates []string) (map[string]bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	out := make(map[string]bool, len(dates))
	if len(dates) == 0 {
		return out, nil
	}

	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$in": dates},
		"status": confirmedStatus,
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching childcare bookings: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var booking models.ChildcareBooking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding childcare booking: %w", err)
		}
		out[booking.Date] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating childcare bookings: %w", err)
	}
	return out, nil
}
