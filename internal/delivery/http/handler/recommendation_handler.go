package handler

import (
	"errors"
	"strconv"

	"jobmatch/internal/delivery/http/dto"
	"jobmatch/internal/delivery/http/middleware"
	"jobmatch/internal/pkg/response"
	"jobmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	limit := parseQueryInt(c, "limit", 20)

	batch, err := h.uc.GetRecommendations(c.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	out := dto.RecommendationListResponse{
		AISource:        batch.AISource,
		Recommendations: make([]dto.RecommendationResponse, 0, len(batch.Items)),
	}
	for _, it := range batch.Items {
		out.Recommendations = append(out.Recommendations, dto.RecommendationResponse{
			JobID:           it.JobID,
			Title:           it.Title,
			CompanyName:     it.CompanyName,
			Location:        it.Location,
			Score:           it.Score,
			Reason:          it.Reason,
			MatchPercentage: it.MatchPercentage,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseQueryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
