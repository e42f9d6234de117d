package sqlite

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var athleteColumns = []string{
	"id", "full_name", "gender", "age", "weight", "training_plan_id", "created_at", "updated_at",
}

type athleteRepository struct {
	store *Store
}

// NewAthleteRepository creates an AthleteRepository backed by SQLite.
func NewAthleteRepository(store *Store) repository.AthleteRepository {
	return &athleteRepository{store: store}
}

func scanAthlete(row rowScanner) (*domain.Athlete, error) {
	var (
		a                    domain.Athlete
		id, planID           string
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(&id, &a.FullName, &a.Gender, &a.Age, &a.Weight, &planID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if a.ID, err = parseID(id); err != nil {
		return nil, fmt.Errorf("athlete id %q: %w", id, err)
	}
	if a.TrainingPlanID, err = parseID(planID); err != nil {
		return nil, fmt.Errorf("athlete %s plan id %q: %w", id, planID, err)
	}
	if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *athleteRepository) Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error) {
	athlete.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	athlete.CreatedAt = now
	athlete.UpdatedAt = now

	_, err := r.store.exec(ctx, sq.Insert("athletes").Columns(athleteColumns...).Values(
		athlete.ID.Hex(), athlete.FullName, athlete.Gender, athlete.Age, athlete.Weight,
		idOrEmpty(athlete.TrainingPlanID), formatTimestamp(now), formatTimestamp(now),
	))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return athlete.ID, nil
}

func (r *athleteRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Athlete, error) {
	rows, err := r.store.query(ctx, sq.Select(athleteColumns...).From("athletes").Where(sq.Eq{"id": id.Hex()}))
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
	return scanAthlete(rows)
}

// List returns athletes in registration order.
func (r *athleteRepository) List(ctx context.Context) ([]domain.Athlete, error) {
	rows, err := r.store.query(ctx, sq.Select(athleteColumns...).From("athletes").OrderBy("created_at", "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletes := []domain.Athlete{}
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		athletes = append(athletes, *a)
	}
	return athletes, rows.Err()
}

func (r *athleteRepository) Update(ctx context.Context, athlete *domain.Athlete) error {
	athlete.UpdatedAt = time.Now().UTC()
	res, err := r.store.exec(ctx, sq.Update("athletes").SetMap(map[string]any{
		"full_name":        athlete.FullName,
		"gender":           athlete.Gender,
		"age":              athlete.Age,
		"weight":           athlete.Weight,
		"training_plan_id": idOrEmpty(athlete.TrainingPlanID),
		"updated_at":       formatTimestamp(athlete.UpdatedAt),
	}).Where(sq.Eq{"id": athlete.ID.Hex()}))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *athleteRepository) Count(ctx context.Context) (int64, error) {
	return r.store.count(ctx, sq.Select("COUNT(*)").From("athletes"))
}
