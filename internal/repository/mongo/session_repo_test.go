package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_CoversWholeLastDay(t *testing.T) {
	monday, sunday := date(2024, time.June, 3), date(2024, time.June, 9)
	r := dateRange(monday, sunday)

	from, ok := r["$gte"].(time.Time)
	if !ok || !from.Equal(monday) {
		t.Fatalf("$gte = %v", r["$gte"])
	}
	until, ok := r["$lt"].(time.Time)
	if !ok || !until.Equal(date(2024, time.June, 10)) {
		t.Fatalf("$lt = %v", r["$lt"])
	}
	if lateSunday := sunday.Add(23*time.Hour + 59*time.Minute); !lateSunday.Before(until) {
		t.Fatalf("%v falls outside the range", lateSunday)
	}
}

func TestSessionRepository_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count between sends inclusive week", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		ns := mt.DB.Name() + "." + trainingSessionCollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(2)}}))

		athleteID := primitive.NewObjectID()
		n, err := repo.CountTrainingBetween(context.Background(), athleteID, date(2024, time.June, 3), date(2024, time.June, 9))
		if err != nil {
			mt.Fatalf("CountTrainingBetween: %v", err)
		}
		if n != 2 {
			mt.Fatalf("expected 2, got %d", n)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "aggregate" {
			mt.Fatalf("expected an aggregate command, got %+v", evt)
		}
		match := evt.Command.Lookup("pipeline", "0", "$match")
		if got := match.Document().Lookup("athleteId").ObjectID(); got != athleteID {
			mt.Fatalf("athleteId = %v", got)
		}
		if got := match.Document().Lookup("date", "$lt").Time(); !got.Equal(date(2024, time.June, 10)) {
			mt.Fatalf("$lt = %v", got)
		}
	})

	mt.Run("counts by athlete drops orphans", func(mt *mtest.T) {
		repo := NewMongoSessionRepository(mt.DB)
		ns := mt.DB.Name() + "." + coachingSessionCollectionName
		ana := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: ana}, {Key: "sessions", Value: 3}, {Key: "fullName", Value: "Ana"}},
		))

		counts, err := repo.CoachingCountsByAthlete(context.Background())
		if err != nil {
			mt.Fatalf("CoachingCountsByAthlete: %v", err)
		}
		if len(counts) != 1 || counts[0].AthleteID != ana || counts[0].Sessions != 3 || counts[0].FullName != "Ana" {
			mt.Fatalf("unexpected counts: %+v", counts)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "aggregate" {
			mt.Fatalf("expected an aggregate command, got %+v", evt)
		}
		if unwind := evt.Command.Lookup("pipeline", "2", "$unwind").StringValue(); unwind != "$athlete" {
			mt.Fatalf("third stage should unwind the joined athlete, got %q", unwind)
		}
	})
}
