package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobmatch/internal/config"
	"jobmatch/internal/database"
	"jobmatch/internal/database/migration"
	dbpostgres "jobmatch/internal/database/postgres"
	"jobmatch/internal/embedding"
	"jobmatch/internal/extraction"
	"jobmatch/internal/infrastructure/cache"
	"jobmatch/internal/repository"
	"jobmatch/internal/usecase"
)

// Container wires the matching core and its collaborators once per process.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis

	Recommendations usecase.RecommendationUsecase
	ResumeUploads   usecase.ResumeUploadUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: cfg.App.MigrateDir}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	jobs := repository.NewPostgresJobRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	recs := repository.NewPostgresRecommendationRepository(db)

	encoder := embedding.NewGenAIEncoder(cfg.AI.APIKey, cfg.AI.EmbedModel, logger)
	embeddings := embedding.NewJobEmbeddingCache(encoder, embedding.DefaultCacheTTL, logger)
	ranker := usecase.NewSemanticRanker(embeddings, encoder, recs, logger)
	extractor := extraction.New(logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Recommendations: usecase.NewRecommendationUsecase(
			profiles, jobs, recs, ranker, extractor, redisCache, logger,
		),
		ResumeUploads: usecase.NewResumeUploadUsecase(
			profiles, redisCache, cfg.App.ResumeDir, logger,
		),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
