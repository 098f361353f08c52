package repository

import (
	"context"
	"time"

	"jobmatch/internal/database"

	"github.com/google/uuid"
)

type RecommendationUpsert struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	Score     float64
	Reason    string
	CreatedAt time.Time
}

// RecommendationRow is a persisted recommendation joined with the posting
// fields the presentation layer needs.
type RecommendationRow struct {
	JobID     uuid.UUID
	Title     string
	Company   string
	Location  string
	Score     float64
	Reason    string
	CreatedAt time.Time
}

type RecommendationRepository interface {
	// Upsert writes the latest score and reason for a (user, job) pair,
	// replacing any prior record for that pair in one atomic statement.
	Upsert(ctx context.Context, rec RecommendationUpsert) error
	// RecentByUser returns records no older than the window, best first.
	// Older records are treated as absent, not deleted.
	RecentByUser(ctx context.Context, userID uuid.UUID, window time.Duration) ([]RecommendationRow, error)
}

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

func (r *PostgresRecommendationRepository) Upsert(ctx context.Context, rec RecommendationUpsert) error {
	if rec.UserID == uuid.Nil || rec.JobID == uuid.Nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_recommendations (id, user_id, job_id, score, reason, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
			score = EXCLUDED.score,
			reason = EXCLUDED.reason,
			created_at = EXCLUDED.created_at`,
		uuid.New(), rec.UserID, rec.JobID, rec.Score, rec.Reason, rec.CreatedAt,
	)
	return err
}

func (r *PostgresRecommendationRepository) RecentByUser(ctx context.Context, userID uuid.UUID, window time.Duration) ([]RecommendationRow, error) {
	if window <= 0 {
		return []RecommendationRow{}, nil
	}
	cutoff := time.Now().UTC().Add(-window)

	rows, err := r.db.Query(ctx,
		`SELECT rec.job_id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.location, ''),
		        rec.score, COALESCE(rec.reason, ''), rec.created_at
		 FROM job_recommendations rec
		 JOIN jobs j ON j.id = rec.job_id
		 WHERE rec.user_id = $1 AND rec.created_at >= $2
		 ORDER BY rec.score DESC, rec.created_at DESC`,
		userID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecommendationRow, 0)
	for rows.Next() {
		var rec RecommendationRow
		if err := rows.Scan(
			&rec.JobID, &rec.Title, &rec.Company, &rec.Location,
			&rec.Score, &rec.Reason, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
