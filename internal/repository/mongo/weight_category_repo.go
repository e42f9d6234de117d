package mongo

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weightCategoryCollectionName = "weight_categories"

type mongoWeightCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightCategoryRepository creates a new WeightCategory repository.
func NewMongoWeightCategoryRepository(db *mongo.Database) repository.WeightCategoryRepository {
	return &mongoWeightCategoryRepository{
		collection: db.Collection(weightCategoryCollectionName),
	}
}

func (r *mongoWeightCategoryRepository) Create(ctx context.Context, category *domain.WeightCategory) (primitive.ObjectID, error) {
	if category.Name == "" {
		return primitive.NilObjectID, errors.New("weight category requires a name")
	}
	category.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		return primitive.NilObjectID, err
	}
	return category.ID, nil
}

func (r *mongoWeightCategoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.WeightCategory, error) {
	var category domain.WeightCategory
	if err := r.collection.FindOne(ctx, filter).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *mongoWeightCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightCategory, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoWeightCategoryRepository) GetByName(ctx context.Context, name string) (*domain.WeightCategory, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoWeightCategoryRepository) List(ctx context.Context) ([]domain.WeightCategory, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "minWeight", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []domain.WeightCategory{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// EnsureWeightCategoryIndexes creates necessary indexes. Call during startup.
func EnsureWeightCategoryIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "minWeight", Value: 1}}},
	})
}
