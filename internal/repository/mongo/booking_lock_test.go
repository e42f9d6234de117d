package mongo

import (
	"alcyxob/gym-tally/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBookingLocker_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	weekStart := date(2024, time.June, 3)

	mt.Run("lock document is bumped before fn runs", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		locker := NewBookingLocker(mt.DB, false)
		athleteID := primitive.NewObjectID()

		called := false
		err := locker.WithinWeekLock(context.Background(), athleteID, domain.SessionKindTraining, weekStart, func(context.Context) error {
			called = true
			evt := mt.GetStartedEvent()
			if evt == nil || evt.CommandName != "update" {
				return errors.New("lock update was not sent before fn")
			}
			if evt.Command.Lookup("update").StringValue() != bookingLockCollectionName {
				return errors.New("lock update targets the wrong collection")
			}
			stmt := evt.Command.Lookup("updates", "0").Document()
			if !stmt.Lookup("upsert").Boolean() {
				return errors.New("lock update is not an upsert")
			}
			if got := stmt.Lookup("q", "weekStart").StringValue(); got != "2024-06-03" {
				return errors.New("unexpected weekStart " + got)
			}
			if got := stmt.Lookup("q", "kind").StringValue(); got != string(domain.SessionKindTraining) {
				return errors.New("unexpected kind " + got)
			}
			if got := stmt.Lookup("q", "athleteId").ObjectID(); got != athleteID {
				return errors.New("unexpected athleteId " + got.Hex())
			}
			return nil
		})
		if err != nil {
			mt.Fatalf("WithinWeekLock: %v", err)
		}
		if !called {
			mt.Fatal("fn was not called")
		}
	})

	mt.Run("failed lock skips fn", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "lock rejected",
		}))
		locker := NewBookingLocker(mt.DB, false)

		called := false
		err := locker.WithinWeekLock(context.Background(), primitive.NewObjectID(), domain.SessionKindCoaching, weekStart, func(context.Context) error {
			called = true
			return nil
		})
		if err == nil {
			mt.Fatal("expected the lock error to be returned")
		}
		if called {
			mt.Fatal("fn ran without the lock")
		}
	})

	mt.Run("fn error is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		locker := NewBookingLocker(mt.DB, false)
		boom := errors.New("boom")

		err := locker.WithinWeekLock(context.Background(), primitive.NewObjectID(), domain.SessionKindTraining, weekStart, func(context.Context) error {
			return boom
		})
		if !errors.Is(err, boom) {
			mt.Fatalf("expected fn error, got %v", err)
		}
	})
}
