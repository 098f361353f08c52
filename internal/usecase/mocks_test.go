package usecase

import (
	"context"
	"sort"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/extraction"
	"jobmatch/internal/repository"

	"github.com/google/uuid"
)

type fakeEncoder struct {
	vectors    map[string][]float32
	fallback   []float32
	batchCalls int
	textCalls  int
	err        error
}

func (e *fakeEncoder) vectorFor(text string) []float32 {
	if v, ok := e.vectors[text]; ok {
		return v
	}
	return e.fallback
}

func (e *fakeEncoder) EncodeText(_ context.Context, text string) ([]float32, error) {
	e.textCalls++
	if e.err != nil {
		return nil, e.err
	}
	return e.vectorFor(text), nil
}

func (e *fakeEncoder) EncodeBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vectorFor(t)
	}
	return out, nil
}

type memRecRepo struct {
	jobs    map[uuid.UUID]job.Job
	rows    map[string]repository.RecommendationUpsert
	upserts int
	now     func() time.Time
}

func newMemRecRepo(jobs []job.Job) *memRecRepo {
	byID := make(map[uuid.UUID]job.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	return &memRecRepo{
		jobs: byID,
		rows: make(map[string]repository.RecommendationUpsert),
		now:  time.Now,
	}
}

func (m *memRecRepo) Upsert(_ context.Context, rec repository.RecommendationUpsert) error {
	m.upserts++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	m.rows[rec.UserID.String()+"|"+rec.JobID.String()] = rec
	return nil
}

func (m *memRecRepo) RecentByUser(_ context.Context, userID uuid.UUID, window time.Duration) ([]repository.RecommendationRow, error) {
	cutoff := m.now().Add(-window)
	out := make([]repository.RecommendationRow, 0)
	for _, rec := range m.rows {
		if rec.UserID != userID || rec.CreatedAt.Before(cutoff) {
			continue
		}
		j := m.jobs[rec.JobID]
		out = append(out, repository.RecommendationRow{
			JobID:     rec.JobID,
			Title:     j.Title,
			Company:   j.Company,
			Location:  j.Location,
			Score:     rec.Score,
			Reason:    rec.Reason,
			CreatedAt: rec.CreatedAt,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}

type mockProfileRepo struct {
	profile *profile.SeekerProfile
	err     error
}

func (m mockProfileRepo) FindByUserID(context.Context, uuid.UUID) (*profile.SeekerProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profile == nil {
		return nil, repository.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m mockProfileRepo) SetResume(context.Context, uuid.UUID, string, string) error { return nil }

type mockJobRepo struct {
	jobs []job.Job
	err  error
}

func (m mockJobRepo) ListOpenForUser(context.Context, uuid.UUID) ([]job.Job, error) {
	return m.jobs, m.err
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(extraction.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
