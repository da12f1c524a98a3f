package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caregrid/database"
	"caregrid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoScheduleRepo{coll: db.Collection("schedules")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("failed to ensure schedule indexes: %v", err))
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// GetByID retrieves a schedule document scoped to its owner.
func (repo *MongoScheduleRepo) GetByID(userID, id string) (*models.ScheduleRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.ScheduleRecord
	filter := bson.M{"userId": userID, "id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching schedule %s: %w", id, err)
	}
	return &record, nil
}

// ListByUser retrieves all schedules for a user ordered by creation time.
// The ascending order is what gives the calendar deriver its stable
// oldest-wins tie-break.
func (repo *MongoScheduleRepo) ListByUser(userID string) ([]*models.ScheduleRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var records []*models.ScheduleRecord
	for cursor.Next(ctx) {
		var record models.ScheduleRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("error decoding schedule: %w", err)
		}
		records = append(records, &record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}
	return records, nil
}

// Save upserts a schedule record by id.
func (repo *MongoScheduleRepo) Save(record *models.ScheduleRecord) (*models.ScheduleRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}
	if record.DeletedDates == nil {
		record.DeletedDates = []string{}
	}

	filter := bson.M{"id": record.ID}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, fmt.Errorf("error saving schedule %s: %w", record.ID, err)
	}
	return record, nil
}

// AppendDeletedDate marks a single date as cancelled on a schedule. $addToSet
// keeps the operation atomic on the record and idempotent per date.
func (repo *MongoScheduleRepo) AppendDeletedDate(id, date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$addToSet": bson.M{"deletedDates": date},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error appending deleted date to schedule %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("schedule %s not found", id)
	}
	return nil
}

// Delete removes a schedule owned by the user.
func (repo *MongoScheduleRepo) Delete(userID, id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"userId": userID, "id": id})
	if err != nil {
		return fmt.Errorf("error deleting schedule %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("schedule %s not found", id)
	}
	return nil
}
