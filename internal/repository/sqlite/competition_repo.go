package sqlite

import (
	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var competitionColumns = []string{"id", "name", "competition_date", "entry_fee", "weight_category_id", "created_at"}

type competitionRepository struct {
	store *Store
}

// NewCompetitionRepository creates a CompetitionRepository backed by SQLite.
func NewCompetitionRepository(store *Store) repository.CompetitionRepository {
	return &competitionRepository{store: store}
}

func scanCompetition(row rowScanner) (*domain.Competition, error) {
	var (
		c                         domain.Competition
		id, date, category, added string
		err                       error
	)
	if err = row.Scan(&id, &c.Name, &date, &c.EntryFee, &category, &added); err != nil {
		return nil, err
	}
	if c.ID, err = parseID(id); err != nil {
		return nil, fmt.Errorf("competition id %q: %w", id, err)
	}
	if c.WeightCategoryID, err = parseID(category); err != nil {
		return nil, fmt.Errorf("competition %s category %q: %w", id, category, err)
	}
	if c.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTimestamp(added); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCompetitions(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]domain.Competition, error) {
	competitions := []domain.Competition{}
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, err
		}
		competitions = append(competitions, *c)
	}
	return competitions, rows.Err()
}

func (r *competitionRepository) Create(ctx context.Context, competition *domain.Competition) (primitive.ObjectID, error) {
	competition.ID = primitive.NewObjectID()
	competition.CreatedAt = time.Now().UTC()
	_, err := r.store.exec(ctx, sq.Insert("competitions").Columns(competitionColumns...).Values(
		competition.ID.Hex(), competition.Name, calendar.FormatDate(competition.Date),
		competition.EntryFee, competition.WeightCategoryID.Hex(), formatTimestamp(competition.CreatedAt),
	))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return competition.ID, nil
}

func (r *competitionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Competition, error) {
	rows, err := r.store.query(ctx, sq.Select(competitionColumns...).From("competitions").Where(sq.Eq{"id": id.Hex()}))
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
	return scanCompetition(rows)
}

func (r *competitionRepository) List(ctx context.Context) ([]domain.Competition, error) {
	rows, err := r.store.query(ctx, sq.Select(competitionColumns...).From("competitions").OrderBy("competition_date", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompetitions(rows)
}

func (r *competitionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.count(ctx, sq.Select("COUNT(*)").From("competitions"))
}

func (r *competitionRepository) Register(ctx context.Context, registration *domain.CompetitionRegistration) (primitive.ObjectID, error) {
	registration.ID = primitive.NewObjectID()
	registration.RegisteredAt = time.Now().UTC()
	_, err := r.store.exec(ctx, sq.Insert("competition_registrations").
		Columns("id", "competition_id", "athlete_id", "registered_at").
		Values(registration.ID.Hex(), registration.CompetitionID.Hex(), registration.AthleteID.Hex(), formatTimestamp(registration.RegisteredAt)))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return registration.ID, nil
}

func (r *competitionRepository) ListRegistrations(ctx context.Context, competitionID primitive.ObjectID) ([]domain.CompetitionRegistration, error) {
	rows, err := r.store.query(ctx, sq.Select("id", "competition_id", "athlete_id", "registered_at").
		From("competition_registrations").
		Where(sq.Eq{"competition_id": competitionID.Hex()}).
		OrderBy("registered_at", "id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := []domain.CompetitionRegistration{}
	for rows.Next() {
		var (
			reg                                 domain.CompetitionRegistration
			id, competition, athlete, timestamp string
		)
		if err := rows.Scan(&id, &competition, &athlete, &timestamp); err != nil {
			return nil, err
		}
		if reg.ID, err = parseID(id); err != nil {
			return nil, err
		}
		if reg.CompetitionID, err = parseID(competition); err != nil {
			return nil, err
		}
		if reg.AthleteID, err = parseID(athlete); err != nil {
			return nil, err
		}
		if reg.RegisteredAt, err = parseTimestamp(timestamp); err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

// RegistrationCounts maps competition ID to its number of registrations.
// Competitions without registrations are absent from the map.
func (r *competitionRepository) RegistrationCounts(ctx context.Context) (map[primitive.ObjectID]int, error) {
	rows, err := r.store.query(ctx, sq.Select("competition_id", "COUNT(*)").
		From("competition_registrations").
		GroupBy("competition_id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[primitive.ObjectID]int)
	for rows.Next() {
		var (
			hex string
			n   int
		)
		if err := rows.Scan(&hex, &n); err != nil {
			return nil, err
		}
		id, err := parseID(hex)
		if err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *competitionRepository) ListForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error) {
	rows, err := r.store.query(ctx, sq.Select(
		"c.id", "c.name", "c.competition_date", "c.entry_fee", "c.weight_category_id", "c.created_at",
	).
		From("competition_registrations AS r").
		Join("competitions AS c ON c.id = r.competition_id").
		Where(sq.Eq{"r.athlete_id": athleteID.Hex()}).
		OrderBy("c.competition_date", "r.registered_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompetitions(rows)
}
