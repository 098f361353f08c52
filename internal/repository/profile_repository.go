package repository

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/database"
	"jobmatch/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("seeker profile not found")

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.SeekerProfile, error)
	SetResume(ctx context.Context, userID uuid.UUID, path, format string) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.SeekerProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(skills, '{}'), COALESCE(experience_years, 0),
		        COALESCE(location, ''), COALESCE(education, '{}'),
		        COALESCE(resume_path, ''), COALESCE(resume_format, ''), updated_at
		 FROM job_seeker_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p profile.SeekerProfile
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Skills, &p.ExperienceYears,
		&p.Location, &p.Education,
		&p.ResumePath, &p.ResumeFormat, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProfileRepository) SetResume(ctx context.Context, userID uuid.UUID, path, format string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_seeker_profiles
		 SET resume_path = $2, resume_format = $3, updated_at = $4
		 WHERE user_id = $1`,
		userID, path, format, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
