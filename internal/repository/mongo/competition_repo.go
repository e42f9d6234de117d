package mongo

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	competitionCollectionName  = "competitions"
	registrationCollectionName = "competition_registrations"
)

// mongoCompetitionRepository implements repository.CompetitionRepository.
// Registrations live in their own collection; nothing prevents the same
// athlete from holding several registrations for one competition.
type mongoCompetitionRepository struct {
	competitions  *mongo.Collection
	registrations *mongo.Collection
}

// NewMongoCompetitionRepository creates a new Competition repository.
func NewMongoCompetitionRepository(db *mongo.Database) repository.CompetitionRepository {
	return &mongoCompetitionRepository{
		competitions:  db.Collection(competitionCollectionName),
		registrations: db.Collection(registrationCollectionName),
	}
}

func (r *mongoCompetitionRepository) Create(ctx context.Context, competition *domain.Competition) (primitive.ObjectID, error) {
	if competition.Name == "" || competition.WeightCategoryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("competition requires name and weightCategoryId")
	}
	competition.ID = primitive.NewObjectID()
	competition.CreatedAt = time.Now().UTC()

	if _, err := r.competitions.InsertOne(ctx, competition); err != nil {
		return primitive.NilObjectID, err
	}
	return competition.ID, nil
}

func (r *mongoCompetitionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Competition, error) {
	var competition domain.Competition
	err := r.competitions.FindOne(ctx, bson.M{"_id": id}).Decode(&competition)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &competition, nil
}

func (r *mongoCompetitionRepository) List(ctx context.Context) ([]domain.Competition, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.competitions.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	competitions := []domain.Competition{}
	if err = cursor.All(ctx, &competitions); err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *mongoCompetitionRepository) Count(ctx context.Context) (int64, error) {
	return r.competitions.CountDocuments(ctx, bson.M{})
}

func (r *mongoCompetitionRepository) Register(ctx context.Context, registration *domain.CompetitionRegistration) (primitive.ObjectID, error) {
	registration.ID = primitive.NewObjectID()
	registration.RegisteredAt = time.Now().UTC()
	if _, err := r.registrations.InsertOne(ctx, registration); err != nil {
		return primitive.NilObjectID, err
	}
	return registration.ID, nil
}

func (r *mongoCompetitionRepository) ListRegistrations(ctx context.Context, competitionID primitive.ObjectID) ([]domain.CompetitionRegistration, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.registrations.Find(ctx, bson.M{"competitionId": competitionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	registrations := []domain.CompetitionRegistration{}
	if err = cursor.All(ctx, &registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *mongoCompetitionRepository) RegistrationCounts(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$competitionId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.registrations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CompetitionID primitive.ObjectID `bson:"_id"`
		Count         int                `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.CompetitionID] = row.Count
	}
	return counts, nil
}

// ListForAthlete joins each of the athlete's registrations to its
// competition, one output document per registration.
func (r *mongoCompetitionRepository) ListForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "athleteId", Value: athleteID}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: competitionCollectionName},
			{Key: "localField", Value: "competitionId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "competition"},
		}}},
		{{Key: "$unwind", Value: "$competition"}},
		{{Key: "$sort", Value: bson.D{{Key: "competition.date", Value: 1}, {Key: "registeredAt", Value: 1}}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$competition"}}}},
	}
	cursor, err := r.registrations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	competitions := []domain.Competition{}
	if err = cursor.All(ctx, &competitions); err != nil {
		return nil, err
	}
	return competitions, nil
}

// EnsureCompetitionIndexes creates indexes for competitions and registrations.
func EnsureCompetitionIndexes(ctx context.Context, competitions, registrations *mongo.Collection) {
	createIndexes(ctx, competitions, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	createIndexes(ctx, registrations, []mongo.IndexModel{
		{Keys: bson.D{{Key: "competitionId", Value: 1}}},
		{Keys: bson.D{{Key: "athleteId", Value: 1}, {Key: "registeredAt", Value: 1}}},
	})
}
