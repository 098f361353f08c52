package embedding

import (
	"context"
	"testing"
	"time"

	"jobmatch/internal/domain/job"

	"github.com/google/uuid"
)

type countingEncoder struct {
	batchCalls int
	textCalls  int
	dim        int
	err        error
}

func (e *countingEncoder) EncodeText(_ context.Context, _ string) ([]float32, error) {
	e.textCalls++
	if e.err != nil {
		return nil, e.err
	}
	return make([]float32, e.dim), nil
}

func (e *countingEncoder) EncodeBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, e.dim)
	}
	return out, nil
}

func testJobs(n int, updated time.Time) []job.Job {
	jobs := make([]job.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, job.Job{
			ID:        uuid.New(),
			Title:     "Backend Engineer",
			Company:   "Acme",
			UpdatedAt: updated,
		})
	}
	return jobs
}

func TestJobEmbeddings_EmptySetSkipsEncoder(t *testing.T) {
	enc := &countingEncoder{dim: 4}
	cache := NewJobEmbeddingCache(enc, time.Hour, nil)

	vectors, jobs, err := cache.JobEmbeddings(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil vectors for empty set")
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty jobs, got %d", len(jobs))
	}
	if enc.batchCalls != 0 {
		t.Fatalf("encoder invoked for empty set")
	}
}

func TestJobEmbeddings_FingerprintHitSkipsRecompute(t *testing.T) {
	enc := &countingEncoder{dim: 4}
	cache := NewJobEmbeddingCache(enc, time.Hour, nil)
	jobs := testJobs(3, time.Now())

	if _, _, err := cache.JobEmbeddings(context.Background(), jobs, false); err != nil {
		t.Fatalf("first call: %v", err)
	}
	vectors, cached, err := cache.JobEmbeddings(context.Background(), jobs, false)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if enc.batchCalls != 1 {
		t.Fatalf("expected 1 encoder batch call, got %d", enc.batchCalls)
	}
	if len(vectors) != 3 || len(cached) != 3 {
		t.Fatalf("expected 3 parallel entries, got %d vectors / %d jobs", len(vectors), len(cached))
	}
}

func TestJobEmbeddings_ForceReloadRecomputes(t *testing.T) {
	enc := &countingEncoder{dim: 4}
	cache := NewJobEmbeddingCache(enc, time.Hour, nil)
	jobs := testJobs(2, time.Now())

	if _, _, err := cache.JobEmbeddings(context.Background(), jobs, false); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, _, err := cache.JobEmbeddings(context.Background(), jobs, true); err != nil {
		t.Fatalf("forced call: %v", err)
	}
	if enc.batchCalls != 2 {
		t.Fatalf("expected 2 encoder batch calls, got %d", enc.batchCalls)
	}
}

func TestJobEmbeddings_ExpiredEntryRecomputes(t *testing.T) {
	enc := &countingEncoder{dim: 4}
	cache := NewJobEmbeddingCache(enc, time.Nanosecond, nil)
	jobs := testJobs(2, time.Now())

	if _, _, err := cache.JobEmbeddings(context.Background(), jobs, false); err != nil {
		t.Fatalf("first call: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, _, err := cache.JobEmbeddings(context.Background(), jobs, false); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if enc.batchCalls != 2 {
		t.Fatalf("expected expired entry to recompute, got %d batch calls", enc.batchCalls)
	}
}

func TestFingerprint_ShiftsOnUpdateAndCount(t *testing.T) {
	base := time.Unix(1700000000, 0)
	jobs := testJobs(2, base)

	k1 := Fingerprint(jobs)
	if k1 != Fingerprint(jobs) {
		t.Fatalf("fingerprint not deterministic")
	}

	jobs[1].UpdatedAt = base.Add(time.Minute)
	if Fingerprint(jobs) == k1 {
		t.Fatalf("fingerprint unchanged after update")
	}

	if Fingerprint(jobs[:1]) == Fingerprint(jobs) {
		t.Fatalf("fingerprint unchanged after count change")
	}
}
