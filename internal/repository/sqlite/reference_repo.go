package sqlite

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var planColumns = []string{
	"id", "name", "price", "num_of_sessions",
	"can_attend_competitions", "can_attend_private_coaching", "private_coaching_max_sessions",
}

type trainingPlanRepository struct {
	store *Store
}

// NewTrainingPlanRepository creates a TrainingPlanRepository backed by SQLite.
func NewTrainingPlanRepository(store *Store) repository.TrainingPlanRepository {
	return &trainingPlanRepository{store: store}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*domain.TrainingPlan, error) {
	var (
		plan domain.TrainingPlan
		id   string
	)
	if err := row.Scan(&id, &plan.Name, &plan.Price, &plan.NumOfSessions,
		&plan.CanAttendCompetitions, &plan.CanAttendPrivateCoaching, &plan.PrivateCoachingMaxSessions); err != nil {
		return nil, err
	}
	var err error
	if plan.ID, err = parseID(id); err != nil {
		return nil, fmt.Errorf("training plan id %q: %w", id, err)
	}
	return &plan, nil
}

func (r *trainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	_, err := r.store.exec(ctx, sq.Insert("training_plans").Columns(planColumns...).Values(
		plan.ID.Hex(), plan.Name, plan.Price, plan.NumOfSessions,
		plan.CanAttendCompetitions, plan.CanAttendPrivateCoaching, plan.PrivateCoachingMaxSessions,
	))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return plan.ID, nil
}

func (r *trainingPlanRepository) getOne(ctx context.Context, where sq.Eq) (*domain.TrainingPlan, error) {
	rows, err := r.store.query(ctx, sq.Select(planColumns...).From("training_plans").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanPlan(rows)
}

func (r *trainingPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	return r.getOne(ctx, sq.Eq{"id": id.Hex()})
}

func (r *trainingPlanRepository) GetByName(ctx context.Context, name string) (*domain.TrainingPlan, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

// List returns plans cheapest first.
func (r *trainingPlanRepository) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	rows, err := r.store.query(ctx, sq.Select(planColumns...).From("training_plans").OrderBy("price", "name"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.TrainingPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

var categoryColumns = []string{"id", "name", "min_weight", "max_weight"}

type weightCategoryRepository struct {
	store *Store
}

// NewWeightCategoryRepository creates a WeightCategoryRepository backed by SQLite.
func NewWeightCategoryRepository(store *Store) repository.WeightCategoryRepository {
	return &weightCategoryRepository{store: store}
}

func scanCategory(row rowScanner) (*domain.WeightCategory, error) {
	var (
		category domain.WeightCategory
		id       string
	)
	if err := row.Scan(&id, &category.Name, &category.MinWeight, &category.MaxWeight); err != nil {
		return nil, err
	}
	var err error
	if category.ID, err = parseID(id); err != nil {
		return nil, fmt.Errorf("weight category id %q: %w", id, err)
	}
	return &category, nil
}

func (r *weightCategoryRepository) Create(ctx context.Context, category *domain.WeightCategory) (primitive.ObjectID, error) {
	category.ID = primitive.NewObjectID()
	_, err := r.store.exec(ctx, sq.Insert("weight_categories").Columns(categoryColumns...).Values(
		category.ID.Hex(), category.Name, category.MinWeight, category.MaxWeight,
	))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return category.ID, nil
}

func (r *weightCategoryRepository) getOne(ctx context.Context, where sq.Eq) (*domain.WeightCategory, error) {
	rows, err := r.store.query(ctx, sq.Select(categoryColumns...).From("weight_categories").Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanCategory(rows)
}

func (r *weightCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightCategory, error) {
	return r.getOne(ctx, sq.Eq{"id": id.Hex()})
}

func (r *weightCategoryRepository) GetByName(ctx context.Context, name string) (*domain.WeightCategory, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *weightCategoryRepository) List(ctx context.Context) ([]domain.WeightCategory, error) {
	rows, err := r.store.query(ctx, sq.Select(categoryColumns...).From("weight_categories").OrderBy("min_weight"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.WeightCategory{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}
