package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"
	"jobmatch/internal/domain/profile"
	"jobmatch/internal/extraction"
	"jobmatch/internal/repository"

	"github.com/google/uuid"
)

const (
	// storedWindow is how long persisted recommendations are trusted before
	// the orchestrator recomputes from scratch.
	storedWindow = 7 * 24 * time.Hour
	// ruleScoreFloor drops weak rule-based matches the same way the
	// similarity threshold drops weak semantic ones.
	ruleScoreFloor = 30.0

	defaultLimit = 20
	maxLimit     = 50

	servingCacheTTL = 10 * time.Minute
)

// RecommendationItem is the presentation-facing shape of one recommendation.
type RecommendationItem struct {
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Location        string    `json:"location"`
	Score           float64   `json:"score"`
	Reason          string    `json:"reason"`
	MatchPercentage *float64  `json:"match_percentage,omitempty"`
}

type RecommendationBatch struct {
	Items    []RecommendationItem `json:"items"`
	AISource bool                 `json:"ai_source"`
}

// ResumeExtractor is the slice of the extraction layer the orchestrator needs.
type ResumeExtractor interface {
	Extract(doc extraction.Document) (string, error)
}

// ServingCache is an optional short-TTL response cache in front of the
// store; a nil-backed implementation bypasses transparently.
type ServingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationBatch, error)
}

// Recommendation sequences store lookup, semantic ranking and the
// rule-based fallback. It owns no ranking state of its own.
type Recommendation struct {
	profiles  repository.ProfileRepository
	jobs      repository.JobRepository
	recs      repository.RecommendationRepository
	ranker    *SemanticRanker
	extractor ResumeExtractor
	cache     ServingCache
	logger    *log.Logger
}

func NewRecommendationUsecase(
	profiles repository.ProfileRepository,
	jobs repository.JobRepository,
	recs repository.RecommendationRepository,
	ranker *SemanticRanker,
	extractor ResumeExtractor,
	cache ServingCache,
	logger *log.Logger,
) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{
		profiles:  profiles,
		jobs:      jobs,
		recs:      recs,
		ranker:    ranker,
		extractor: extractor,
		cache:     cache,
		logger:    logger,
	}
}

// GetRecommendations serves stored recommendations when fresh ones exist,
// otherwise tries the semantic ranker and degrades to rule-based scoring.
// Ranking failures are logged, never surfaced; an empty batch is a valid
// terminal state.
func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationBatch, error) {
	if userID == uuid.Nil {
		return RecommendationBatch{}, ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := servingCacheKey(userID)
	if u.cache != nil {
		var cached RecommendationBatch
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return truncateBatch(cached, limit), nil
		}
	}

	stored, err := u.recs.RecentByUser(ctx, userID, storedWindow)
	if err != nil {
		return RecommendationBatch{}, ErrInternal
	}
	if len(stored) > 0 {
		batch := batchFromStored(stored)
		u.storeServing(ctx, cacheKey, batch)
		return truncateBatch(batch, limit), nil
	}

	prof, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return RecommendationBatch{}, ErrInternal
	}

	candidates, err := u.jobs.ListOpenForUser(ctx, userID)
	if err != nil {
		return RecommendationBatch{}, ErrInternal
	}

	if prof.HasResume() {
		if items := u.trySemantic(ctx, userID, prof, candidates, limit); len(items) > 0 {
			batch := RecommendationBatch{Items: items, AISource: true}
			u.storeServing(ctx, cacheKey, batch)
			return truncateBatch(batch, limit), nil
		}
	}

	items, err := u.generateRuleBased(ctx, userID, prof, candidates, limit)
	if err != nil {
		return RecommendationBatch{}, ErrInternal
	}
	batch := RecommendationBatch{Items: items, AISource: false}
	u.storeServing(ctx, cacheKey, batch)
	return truncateBatch(batch, limit), nil
}

// trySemantic never propagates a failure: a broken resume, a missing
// encoder or an encoding error all mean "no semantic results".
func (u *Recommendation) trySemantic(ctx context.Context, userID uuid.UUID, prof *profile.SeekerProfile, candidates []job.Job, limit int) []RecommendationItem {
	format, err := resolveResumeFormat(prof)
	if err != nil {
		u.logger.Printf("[Recommender] resume format for user %s: %v", userID, err)
		return nil
	}

	resumeText, err := u.extractor.Extract(extraction.Document{Path: prof.ResumePath, Format: format})
	if err != nil {
		u.logger.Printf("[Recommender] resume extraction for user %s: %v", userID, err)
		return nil
	}

	results, err := u.ranker.Rank(ctx, userID, resumeText, candidates, limit)
	if err != nil {
		u.logger.Printf("[Recommender] semantic ranking for user %s: %v", userID, err)
		return nil
	}

	items := make([]RecommendationItem, 0, len(results))
	for _, res := range results {
		items = append(items, RecommendationItem{
			JobID:           res.Job.ID,
			Title:           res.Job.Title,
			CompanyName:     res.Job.Company,
			Location:        res.Job.Location,
			Score:           res.Score,
			Reason:          res.Reason,
			MatchPercentage: res.MatchPercentage,
		})
	}
	return items
}

// generateRuleBased scores every candidate deterministically, keeps those
// above the floor, persists them and returns the best first.
func (u *Recommendation) generateRuleBased(ctx context.Context, userID uuid.UUID, prof *profile.SeekerProfile, candidates []job.Job, limit int) ([]RecommendationItem, error) {
	type scored struct {
		job    job.Job
		result matching.Result
	}

	kept := make([]scored, 0, len(candidates))
	for _, j := range candidates {
		res := matching.Score(prof, j)
		if res.Score > ruleScoreFloor {
			kept = append(kept, scored{job: j, result: res})
		}
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].result.Score > kept[b].result.Score
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}

	items := make([]RecommendationItem, 0, len(kept))
	for _, s := range kept {
		reason := strings.Join(s.result.Reasons, ", ")
		if err := u.recs.Upsert(ctx, repository.RecommendationUpsert{
			UserID: userID,
			JobID:  s.job.ID,
			Score:  s.result.Score,
			Reason: reason,
		}); err != nil {
			return nil, err
		}
		items = append(items, RecommendationItem{
			JobID:       s.job.ID,
			Title:       s.job.Title,
			CompanyName: s.job.Company,
			Location:    s.job.Location,
			Score:       s.result.Score,
			Reason:      reason,
		})
	}

	u.logger.Printf("[Recommender] rule-based produced %d recommendations for user %s", len(items), userID)
	return items, nil
}

func (u *Recommendation) storeServing(ctx context.Context, key string, batch RecommendationBatch) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, batch, servingCacheTTL); err != nil {
		u.logger.Printf("[Recommender] serving cache write: %v", err)
	}
}

func batchFromStored(stored []repository.RecommendationRow) RecommendationBatch {
	ai := false
	for _, rec := range stored {
		if strings.HasPrefix(rec.Reason, AIReasonPrefix) {
			ai = true
			break
		}
	}

	items := make([]RecommendationItem, 0, len(stored))
	for _, rec := range stored {
		item := RecommendationItem{
			JobID:       rec.JobID,
			Title:       rec.Title,
			CompanyName: rec.Company,
			Location:    rec.Location,
			Score:       rec.Score,
			Reason:      rec.Reason,
		}
		if ai && strings.HasPrefix(rec.Reason, AIReasonPrefix) {
			// Semantic scores are stored on the 0-100 scale already.
			pct := rec.Score
			item.MatchPercentage = &pct
		}
		items = append(items, item)
	}
	return RecommendationBatch{Items: items, AISource: ai}
}

func truncateBatch(batch RecommendationBatch, limit int) RecommendationBatch {
	if len(batch.Items) > limit {
		batch.Items = batch.Items[:limit]
	}
	return batch
}

func resolveResumeFormat(prof *profile.SeekerProfile) (extraction.Format, error) {
	if prof.ResumeFormat != "" {
		switch extraction.Format(prof.ResumeFormat) {
		case extraction.FormatPDF:
			return extraction.FormatPDF, nil
		case extraction.FormatDOCX:
			return extraction.FormatDOCX, nil
		}
	}
	return extraction.FormatFromFilename(prof.ResumePath)
}

func servingCacheKey(userID uuid.UUID) string {
	return "recommendations:user:" + userID.String()
}
