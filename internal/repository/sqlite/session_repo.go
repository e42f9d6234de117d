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

const (
	trainingSessionsTable = "training_sessions"
	coachingSessionsTable = "coaching_sessions"
)

type sessionRepository struct {
	store *Store
}

// NewSessionRepository creates a SessionRepository backed by SQLite.
func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

// sessionRow holds the columns shared by both session tables.
type sessionRow struct {
	id, athleteID, date, createdAt string
}

func (row sessionRow) decode() (id, athleteID primitive.ObjectID, date, createdAt time.Time, err error) {
	if id, err = parseID(row.id); err != nil {
		return
	}
	if athleteID, err = parseID(row.athleteID); err != nil {
		return
	}
	if date, err = parseDate(row.date); err != nil {
		return
	}
	createdAt, err = parseTimestamp(row.createdAt)
	return
}

func (r *sessionRepository) countBetween(ctx context.Context, table string, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return r.store.count(ctx, sq.Select("COUNT(*)").From(table).Where(sq.And{
		sq.Eq{"athlete_id": athleteID.Hex()},
		sq.GtOrEq{"session_date": calendar.FormatDate(from)},
		sq.LtOrEq{"session_date": calendar.FormatDate(to)},
	}))
}

// countsByAthlete tallies sessions per athlete. Sessions whose athlete no
// longer exists are skipped by the join.
func (r *sessionRepository) countsByAthlete(ctx context.Context, table string) ([]domain.AthleteSessionCount, error) {
	rows, err := r.store.query(ctx, sq.Select("a.id", "a.full_name", "COUNT(s.id)").
		From(table+" AS s").
		Join("athletes AS a ON a.id = s.athlete_id").
		GroupBy("a.id", "a.full_name").
		OrderBy("a.full_name", "a.id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.AthleteSessionCount{}
	for rows.Next() {
		var (
			c  domain.AthleteSessionCount
			id string
		)
		if err := rows.Scan(&id, &c.FullName, &c.Sessions); err != nil {
			return nil, err
		}
		if c.AthleteID, err = parseID(id); err != nil {
			return nil, fmt.Errorf("athlete id %q: %w", id, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// --- training ---

func (r *sessionRepository) CreateTraining(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()
	_, err := r.store.exec(ctx, sq.Insert(trainingSessionsTable).
		Columns("id", "athlete_id", "session_date", "created_at").
		Values(session.ID.Hex(), session.AthleteID.Hex(), calendar.FormatDate(session.Date), formatTimestamp(session.CreatedAt)))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return session.ID, nil
}

func (r *sessionRepository) CountTrainingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, trainingSessionsTable, athleteID, from, to)
}

// ListTrainingByAthlete returns the athlete's sessions oldest first.
func (r *sessionRepository) ListTrainingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error) {
	rows, err := r.store.query(ctx, sq.Select("id", "athlete_id", "session_date", "created_at").
		From(trainingSessionsTable).
		Where(sq.Eq{"athlete_id": athleteID.Hex()}).
		OrderBy("session_date", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.TrainingSession{}
	for rows.Next() {
		var row sessionRow
		if err := rows.Scan(&row.id, &row.athleteID, &row.date, &row.createdAt); err != nil {
			return nil, err
		}
		var s domain.TrainingSession
		if s.ID, s.AthleteID, s.Date, s.CreatedAt, err = row.decode(); err != nil {
			return nil, fmt.Errorf("training session %q: %w", row.id, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) CountTraining(ctx context.Context) (int64, error) {
	return r.store.count(ctx, sq.Select("COUNT(*)").From(trainingSessionsTable))
}

func (r *sessionRepository) TrainingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return r.countsByAthlete(ctx, trainingSessionsTable)
}

// --- private coaching ---

func (r *sessionRepository) CreateCoaching(ctx context.Context, session *domain.CoachingSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()
	_, err := r.store.exec(ctx, sq.Insert(coachingSessionsTable).
		Columns("id", "athlete_id", "session_date", "tuition_fees", "created_at").
		Values(session.ID.Hex(), session.AthleteID.Hex(), calendar.FormatDate(session.Date), session.TuitionFees, formatTimestamp(session.CreatedAt)))
	if err != nil {
		return primitive.NilObjectID, err
	}
	return session.ID, nil
}

func (r *sessionRepository) CountCoachingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	return r.countBetween(ctx, coachingSessionsTable, athleteID, from, to)
}

func (r *sessionRepository) ListCoachingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error) {
	rows, err := r.store.query(ctx, sq.Select("id", "athlete_id", "session_date", "tuition_fees", "created_at").
		From(coachingSessionsTable).
		Where(sq.Eq{"athlete_id": athleteID.Hex()}).
		OrderBy("session_date", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.CoachingSession{}
	for rows.Next() {
		var (
			row sessionRow
			s   domain.CoachingSession
		)
		if err := rows.Scan(&row.id, &row.athleteID, &row.date, &s.TuitionFees, &row.createdAt); err != nil {
			return nil, err
		}
		if s.ID, s.AthleteID, s.Date, s.CreatedAt, err = row.decode(); err != nil {
			return nil, fmt.Errorf("coaching session %q: %w", row.id, err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) CountCoaching(ctx context.Context) (int64, error) {
	return r.store.count(ctx, sq.Select("COUNT(*)").From(coachingSessionsTable))
}

func (r *sessionRepository) CoachingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return r.countsByAthlete(ctx, coachingSessionsTable)
}
