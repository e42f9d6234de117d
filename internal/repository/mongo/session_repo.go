package mongo

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	trainingSessionCollectionName = "training_sessions"
	coachingSessionCollectionName = "coaching_sessions"
)

// mongoSessionRepository keeps training and coaching sessions in two
// collections with the same layout.
type mongoSessionRepository struct {
	training *mongo.Collection
	coaching *mongo.Collection
}

// NewMongoSessionRepository creates a new Session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		training: db.Collection(trainingSessionCollectionName),
		coaching: db.Collection(coachingSessionCollectionName),
	}
}

// dateRange matches calendar dates from..to, both inclusive. Dates are stored
// as midnight UTC, so the upper bound is the following midnight.
func dateRange(from, to time.Time) bson.M {
	return bson.M{"$gte": from, "$lt": to.AddDate(0, 0, 1)}
}

func countBetween(ctx context.Context, collection *mongo.Collection, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return collection.CountDocuments(ctx, bson.M{
		"athleteId": athleteID,
		"date":      dateRange(from, to),
	})
}

func byAthleteOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
}

// countsByAthlete groups sessions per athlete and joins the athlete's name.
// Sessions of athletes that no longer exist are dropped by the $unwind.
func countsByAthlete(ctx context.Context, collection *mongo.Collection) ([]domain.AthleteSessionCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$athleteId"},
			{Key: "sessions", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: athleteCollectionName},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "athlete"},
		}}},
		{{Key: "$unwind", Value: "$athlete"}},
		{{Key: "$project", Value: bson.D{
			{Key: "sessions", Value: 1},
			{Key: "fullName", Value: "$athlete.fullName"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "fullName", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []domain.AthleteSessionCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// --- training ---

func (r *mongoSessionRepository) CreateTraining(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()
	if _, err := r.training.InsertOne(ctx, session); err != nil {
		return primitive.NilObjectID, err
	}
	return session.ID, nil
}

func (r *mongoSessionRepository) CountTrainingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return countBetween(ctx, r.training, athleteID, from, to)
}

func (r *mongoSessionRepository) ListTrainingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error) {
	cursor, err := r.training.Find(ctx, bson.M{"athleteId": athleteID}, byAthleteOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.TrainingSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *mongoSessionRepository) CountTraining(ctx context.Context) (int64, error) {
	return r.training.CountDocuments(ctx, bson.M{})
}

func (r *mongoSessionRepository) TrainingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return countsByAthlete(ctx, r.training)
}

// --- private coaching ---

func (r *mongoSessionRepository) CreateCoaching(ctx context.Context, session *domain.CoachingSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()
	if _, err := r.coaching.InsertOne(ctx, session); err != nil {
		return primitive.NilObjectID, err
	}
	return session.ID, nil
}

func (r *mongoSessionRepository) CountCoachingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return countBetween(ctx, r.coaching, athleteID, from, to)
}

func (r *mongoSessionRepository) ListCoachingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error) {
	cursor, err := r.coaching.Find(ctx, bson.M{"athleteId": athleteID}, byAthleteOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.CoachingSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *mongoSessionRepository) CountCoaching(ctx context.Context) (int64, error) {
	return r.coaching.CountDocuments(ctx, bson.M{})
}

func (r *mongoSessionRepository) CoachingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return countsByAthlete(ctx, r.coaching)
}

// EnsureSessionIndexes creates the weekly-count index on a session collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}}},
	})
}
