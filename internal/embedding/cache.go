package embedding

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/matching"
)

// DefaultCacheTTL bounds how long a computed job-embedding set may be served.
const DefaultCacheTTL = time.Hour

// cacheEntry is immutable once published; recomputation installs a fresh
// entry under its fingerprint instead of mutating in place.
type cacheEntry struct {
	vectors   [][]float32
	jobs      []job.Job
	expiresAt time.Time
}

// JobEmbeddingCache holds vectors for the active job set, keyed by a cheap
// fingerprint of (job count, newest update). Any insert or update shifts the
// fingerprint, so stale entries fall out without explicit invalidation.
type JobEmbeddingCache struct {
	encoder Encoder
	ttl     time.Duration
	logger  *log.Logger

	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

func NewJobEmbeddingCache(encoder Encoder, ttl time.Duration, logger *log.Logger) *JobEmbeddingCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &JobEmbeddingCache{
		encoder: encoder,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]*cacheEntry),
	}
}

// Fingerprint identifies the current version of a job set. It keys on size
// and the maximum last-updated timestamp, both monotonically advancing.
func Fingerprint(jobs []job.Job) string {
	var maxUpdated int64
	for _, j := range jobs {
		if ts := j.UpdatedAt.Unix(); ts > maxUpdated {
			maxUpdated = ts
		}
	}
	return fmt.Sprintf("job_embeddings_%d_%d", len(jobs), maxUpdated)
}

// JobEmbeddings returns vectors parallel to jobs, serving an unexpired cache
// entry when the fingerprint matches and forceReload is off. An empty job
// set yields (nil, empty) without touching the encoder.
func (c *JobEmbeddingCache) JobEmbeddings(ctx context.Context, jobs []job.Job, forceReload bool) ([][]float32, []job.Job, error) {
	if len(jobs) == 0 {
		return nil, []job.Job{}, nil
	}

	key := Fingerprint(jobs)

	if !forceReload {
		if vectors, cached, ok := c.lookup(key); ok {
			return vectors, cached, nil
		}
	}

	corpora := make([]string, len(jobs))
	for i, j := range jobs {
		corpora[i] = matching.BuildCorpus(j)
	}

	c.logger.Printf("[EmbeddingCache] encoding %d job postings", len(jobs))
	vectors, err := c.encoder.EncodeBatch(ctx, corpora)
	if err != nil {
		return nil, nil, err
	}
	if len(vectors) != len(jobs) {
		return nil, nil, fmt.Errorf("%w: %d vectors for %d jobs", ErrEncodingFailure, len(vectors), len(jobs))
	}

	c.publish(key, vectors, jobs)
	return vectors, jobs, nil
}

func (c *JobEmbeddingCache) lookup(key string) ([][]float32, []job.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil, false
	}
	return entry.vectors, entry.jobs, true
}

// publish installs a fully-built entry and drops expired ones. Readers
// holding the old entry keep a consistent (vectors, jobs) pair.
func (c *JobEmbeddingCache) publish(key string, vectors [][]float32, jobs []job.Job) {
	entry := &cacheEntry{
		vectors:   vectors,
		jobs:      jobs,
		expiresAt: time.Now().Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry
}
