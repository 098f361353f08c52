package repository

import (
	"context"

	"jobmatch/internal/database"
	"jobmatch/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	// ListOpenForUser returns active, unexpired postings the user has not
	// applied to, oldest first so downstream ordering is reproducible.
	ListOpenForUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListOpenForUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.location, ''),
		        COALESCE(j.description, ''), COALESCE(j.requirements, ''),
		        COALESCE(j.skills_required, '{}'), COALESCE(j.work_mode, ''),
		        COALESCE(j.experience_level, ''), j.deadline, j.created_at, j.updated_at
		 FROM jobs j
		 WHERE j.is_active = TRUE
		   AND (j.deadline IS NULL OR j.deadline > NOW())
		   AND NOT EXISTS (
		     SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.user_id = $1
		   )
		 ORDER BY j.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location,
			&j.Description, &j.Requirements,
			&j.SkillsRequired, &j.WorkMode,
			&j.ExperienceLevel, &j.Deadline, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		j.IsActive = true
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
