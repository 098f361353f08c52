package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/embedding"
	"jobmatch/internal/repository"

	"github.com/google/uuid"
)

const (
	// minResumeChars is the smallest trimmed resume that carries enough
	// signal to embed meaningfully.
	minResumeChars = 50
	// similarityThreshold separates recommendations from noise; results at
	// or below it are dropped.
	similarityThreshold = 0.30

	// AIReasonPrefix tags store records produced by the semantic path so a
	// later read can classify a batch without recomputing anything.
	AIReasonPrefix = "AI Match"
)

// MatchResult is one scored posting. Score is on the 0..100 scale shared
// with the rule-based path; MatchPercentage is set on semantic results only.
type MatchResult struct {
	Job             job.Job
	Score           float64
	Reason          string
	MatchPercentage *float64
}

// JobEmbeddingSource is the slice of the embedding layer the ranker needs.
type JobEmbeddingSource interface {
	JobEmbeddings(ctx context.Context, jobs []job.Job, forceReload bool) ([][]float32, []job.Job, error)
}

// SemanticRanker ranks postings against a resume by embedding similarity.
// Every emitted result is upserted immediately, so ranking the same inputs
// twice rewrites the same store rows instead of duplicating them.
type SemanticRanker struct {
	embeddings JobEmbeddingSource
	encoder    embedding.Encoder
	recs       repository.RecommendationRepository
	logger     *log.Logger
}

func NewSemanticRanker(embeddings JobEmbeddingSource, encoder embedding.Encoder, recs repository.RecommendationRepository, logger *log.Logger) *SemanticRanker {
	if logger == nil {
		logger = log.Default()
	}
	return &SemanticRanker{embeddings: embeddings, encoder: encoder, recs: recs, logger: logger}
}

// Rank scores candidates against resumeText and returns the top matches,
// best first. Ties keep the original candidate order. A resume under the
// minimum length returns empty without invoking the encoder.
func (r *SemanticRanker) Rank(ctx context.Context, userID uuid.UUID, resumeText string, candidates []job.Job, topK int) ([]MatchResult, error) {
	if utf8.RuneCountInString(strings.TrimSpace(resumeText)) < minResumeChars {
		r.logger.Printf("[SemanticRanker] resume text too short for user %s", userID)
		return []MatchResult{}, nil
	}
	if topK <= 0 {
		topK = 10
	}

	jobVectors, jobs, err := r.embeddings.JobEmbeddings(ctx, candidates, false)
	if err != nil {
		return nil, err
	}
	if len(jobVectors) == 0 || len(jobs) == 0 {
		return []MatchResult{}, nil
	}

	resumeVector, err := r.encoder.EncodeText(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	similarities := make([]float64, len(jobVectors))
	for i, v := range jobVectors {
		similarities[i] = embedding.CosineSimilarity(resumeVector, v)
	}

	order := make([]int, len(similarities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return similarities[order[a]] > similarities[order[b]]
	})
	if len(order) > topK {
		order = order[:topK]
	}

	results := make([]MatchResult, 0, len(order))
	for _, idx := range order {
		sim := similarities[idx]
		if sim <= similarityThreshold {
			continue
		}

		pct := math.Round(sim*10000) / 100
		res := MatchResult{
			Job:             jobs[idx],
			Score:           pct,
			Reason:          fmt.Sprintf("%s: %.2f%% similarity based on resume analysis", AIReasonPrefix, pct),
			MatchPercentage: &pct,
		}
		results = append(results, res)

		if err := r.recs.Upsert(ctx, repository.RecommendationUpsert{
			UserID: userID,
			JobID:  res.Job.ID,
			Score:  sim * 100,
			Reason: res.Reason,
		}); err != nil {
			return nil, err
		}
	}

	r.logger.Printf("[SemanticRanker] generated %d recommendations for user %s", len(results), userID)
	return results, nil
}
