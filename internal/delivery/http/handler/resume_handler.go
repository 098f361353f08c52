package handler

import (
	"errors"

	"jobmatch/internal/delivery/http/dto"
	"jobmatch/internal/delivery/http/middleware"
	"jobmatch/internal/extraction"
	"jobmatch/internal/pkg/response"
	"jobmatch/internal/repository"
	"jobmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ResumeHandler struct {
	uc usecase.ResumeUploadUsecase
}

func NewResumeHandler(uc usecase.ResumeUploadUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/users/me")
	grp.Post("/resume", h.Upload)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing resume file", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume file", err)
	}
	defer func() { _ = f.Close() }()

	path, err := h.uc.Upload(c.Context(), userID, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrUnsupportedFormat):
			return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported resume format, use PDF or DOCX", err)
		case errors.Is(err, repository.ErrProfileNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Seeker profile not found", err)
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResumeUploadResponse{ResumePath: path})
}
