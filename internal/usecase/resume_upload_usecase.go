package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"jobmatch/internal/extraction"
	"jobmatch/internal/repository"

	"github.com/google/uuid"
)

type ResumeUploadUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error)
}

// ResumeUpload stores an uploaded resume on disk and records it on the
// seeker profile. The format is validated before anything is written.
type ResumeUpload struct {
	profiles repository.ProfileRepository
	cache    ServingCache
	dir      string
	logger   *log.Logger
}

func NewResumeUploadUsecase(profiles repository.ProfileRepository, cache ServingCache, dir string, logger *log.Logger) *ResumeUpload {
	if logger == nil {
		logger = log.Default()
	}
	return &ResumeUpload{profiles: profiles, cache: cache, dir: dir, logger: logger}
}

func (u *ResumeUpload) Upload(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	if filename == "" || r == nil {
		return "", ErrInvalidInput
	}

	format, err := extraction.FormatFromFilename(filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create resume dir: %w", err)
	}

	path := filepath.Join(u.dir, fmt.Sprintf("%s.%s", userID, format))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("flush resume file: %w", err)
	}

	if err := u.profiles.SetResume(ctx, userID, path, string(format)); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, servingCacheKey(userID)); err != nil {
			u.logger.Printf("[ResumeUpload] serving cache invalidate: %v", err)
		}
	}

	u.logger.Printf("[ResumeUpload] stored %s resume for user %s", format, userID)
	return path, nil
}
