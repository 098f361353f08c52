package usecase

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"
	"jobmatch/internal/embedding"

	"github.com/google/uuid"
)

// unitVector builds a 2-d unit vector whose cosine against [1,0] is sim.
func unitVector(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func rankerFixture(similarities []float64) (*SemanticRanker, *fakeEncoder, *memRecRepo, []job.Job, string) {
	resumeText := strings.Repeat("experienced python and django backend developer ", 12)

	updated := time.Unix(1700000000, 0)
	jobs := make([]job.Job, 0, len(similarities))
	vectors := map[string][]float32{resumeText: {1, 0}}
	for i, sim := range similarities {
		j := job.Job{
			ID:        uuid.New(),
			Title:     "Job " + string(rune('A'+i)),
			Company:   "Acme",
			UpdatedAt: updated,
		}
		jobs = append(jobs, j)
		vectors[matching.BuildCorpus(j)] = unitVector(sim)
	}

	enc := &fakeEncoder{vectors: vectors, fallback: []float32{0, 1}}
	recs := newMemRecRepo(jobs)
	cache := embedding.NewJobEmbeddingCache(enc, time.Hour, nil)
	return NewSemanticRanker(cache, enc, recs, nil), enc, recs, jobs, resumeText
}

func TestRank_ShortResumeSkipsEncoder(t *testing.T) {
	ranker, enc, _, jobs, _ := rankerFixture([]float64{0.9})

	results, err := ranker.Rank(context.Background(), uuid.New(), "  too short  ", jobs, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if enc.batchCalls != 0 || enc.textCalls != 0 {
		t.Fatalf("encoder invoked for short resume (batch=%d text=%d)", enc.batchCalls, enc.textCalls)
	}
}

func TestRank_ResumeLengthCountsCharactersNotBytes(t *testing.T) {
	ranker, enc, _, jobs, _ := rankerFixture([]float64{0.9})

	// 30 characters but 60 bytes; still under the minimum length.
	short := strings.Repeat("é", 30)
	results, err := ranker.Rank(context.Background(), uuid.New(), short, jobs, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for a 30-character resume, got %d", len(results))
	}
	if enc.batchCalls != 0 || enc.textCalls != 0 {
		t.Fatalf("encoder invoked for short resume (batch=%d text=%d)", enc.batchCalls, enc.textCalls)
	}

	// 50 characters clears the gate regardless of byte length.
	long := strings.Repeat("é", 50)
	if _, err := ranker.Rank(context.Background(), uuid.New(), long, jobs, 10); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if enc.batchCalls == 0 || enc.textCalls == 0 {
		t.Fatalf("encoder not invoked for 50-character resume")
	}
}

func TestRank_SingleMatchAboveThreshold(t *testing.T) {
	ranker, _, recs, jobs, resumeText := rankerFixture([]float64{0.45, 0.2, 0.1})
	userID := uuid.New()

	results, err := ranker.Rank(context.Background(), userID, resumeText, jobs, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}

	res := results[0]
	if res.Job.ID != jobs[0].ID {
		t.Fatalf("wrong job ranked first")
	}
	if res.MatchPercentage == nil || *res.MatchPercentage != 45.0 {
		t.Fatalf("expected match percentage 45.0, got %v", res.MatchPercentage)
	}
	if !strings.HasPrefix(res.Reason, AIReasonPrefix) {
		t.Fatalf("reason missing AI prefix: %q", res.Reason)
	}

	rows, err := recs.RecentByUser(context.Background(), userID, time.Hour)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(rows))
	}
	if math.Abs(rows[0].Score-45.0) > 0.01 {
		t.Fatalf("expected persisted score ~45.0, got %v", rows[0].Score)
	}
}

func TestRank_BelowThresholdExcluded(t *testing.T) {
	ranker, _, recs, jobs, resumeText := rankerFixture([]float64{0.25, 0.1})

	results, err := ranker.Rank(context.Background(), uuid.New(), resumeText, jobs, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for sub-threshold similarities, got %d", len(results))
	}
	if len(recs.rows) != 0 {
		t.Fatalf("sub-threshold results must not be persisted")
	}
}

func TestRank_TopKOrderingStable(t *testing.T) {
	ranker, _, _, jobs, resumeText := rankerFixture([]float64{0.5, 0.9, 0.9, 0.7})

	results, err := ranker.Rank(context.Background(), uuid.New(), resumeText, jobs, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Equal 0.9 scores keep candidate order; 0.7 beats 0.5 for the last slot.
	if results[0].Job.ID != jobs[1].ID || results[1].Job.ID != jobs[2].ID || results[2].Job.ID != jobs[3].ID {
		t.Fatalf("unexpected ordering: %v %v %v", results[0].Job.Title, results[1].Job.Title, results[2].Job.Title)
	}
}

func TestRank_RepeatCallIsIdempotent(t *testing.T) {
	ranker, enc, recs, jobs, resumeText := rankerFixture([]float64{0.45, 0.2})
	userID := uuid.New()

	first, err := ranker.Rank(context.Background(), userID, resumeText, jobs, 10)
	if err != nil {
		t.Fatalf("first rank: %v", err)
	}
	second, err := ranker.Rank(context.Background(), userID, resumeText, jobs, 10)
	if err != nil {
		t.Fatalf("second rank: %v", err)
	}

	if enc.batchCalls != 1 {
		t.Fatalf("job embeddings recomputed: %d batch calls", enc.batchCalls)
	}
	if len(recs.rows) != 1 {
		t.Fatalf("expected upsert to dedupe, got %d rows", len(recs.rows))
	}
	if len(first) != len(second) || first[0].Reason != second[0].Reason || first[0].Score != second[0].Score {
		t.Fatalf("repeat call produced different results")
	}
}

func TestRank_EmptyCandidateSet(t *testing.T) {
	ranker, enc, _, _, resumeText := rankerFixture(nil)

	results, err := ranker.Rank(context.Background(), uuid.New(), resumeText, nil, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if enc.batchCalls != 0 {
		t.Fatalf("encoder invoked for empty candidate set")
	}
}
