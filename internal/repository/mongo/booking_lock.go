package mongo

import (
	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingLockCollectionName = "booking_locks"

// BookingLocker implements repository.BookingLocker with one lock document per
// athlete, session kind and week. Transactions need a replica set; a
// standalone server can run with transactions disabled, at the cost of
// losing the atomic check-and-insert.
type BookingLocker struct {
	client       *mongo.Client
	locks        *mongo.Collection
	transactions bool
}

// NewBookingLocker creates a BookingLocker on db.
func NewBookingLocker(db *mongo.Database, transactions bool) *BookingLocker {
	if !transactions {
		log.Println("WARN: MongoDB transactions disabled, concurrent bookings may exceed weekly caps")
	}
	return &BookingLocker{
		client:       db.Client(),
		locks:        db.Collection(bookingLockCollectionName),
		transactions: transactions,
	}
}

// touch bumps the week's lock document, creating it on first use. Inside a
// transaction this write conflicts with any concurrent booking for the same
// week, and the driver retries the loser.
func (l *BookingLocker) touch(ctx context.Context, athleteID primitive.ObjectID, kind domain.SessionKind, weekStart time.Time) error {
	filter := bson.M{
		"athleteId": athleteID,
		"kind":      string(kind),
		"weekStart": calendar.FormatDate(weekStart),
	}
	update := bson.M{"$inc": bson.M{"version": 1}}
	_, err := l.locks.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	return nil
}

func (l *BookingLocker) WithinWeekLock(ctx context.Context, athleteID primitive.ObjectID, kind domain.SessionKind, weekStart time.Time, fn func(ctx context.Context) error) error {
	if !l.transactions {
		if err := l.touch(ctx, athleteID, kind, weekStart); err != nil {
			return err
		}
		return fn(ctx)
	}

	session, err := l.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := l.touch(sc, athleteID, kind, weekStart); err != nil {
			return nil, err
		}
		return nil, fn(sc)
	})
	return err
}

// EnsureBookingLockIndexes creates the unique key the lock upsert relies on.
func EnsureBookingLockIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "athleteId", Value: 1},
			{Key: "kind", Value: 1},
			{Key: "weekStart", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
