package dto

import "github.com/google/uuid"

type RecommendationResponse struct {
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Location        string    `json:"location"`
	Score           float64   `json:"score"`
	Reason          string    `json:"reason"`
	MatchPercentage *float64  `json:"match_percentage,omitempty"`
}

type RecommendationListResponse struct {
	AISource        bool                     `json:"ai_source"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type ResumeUploadResponse struct {
	ResumePath string `json:"resume_path"`
}
