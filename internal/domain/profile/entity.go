package profile

import (
	"time"

	"github.com/google/uuid"
)

// SeekerProfile is the job-seeker side of a user account. ResumePath points
// at the most recently uploaded resume file; empty means no resume on file.
type SeekerProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Skills          []string
	ExperienceYears int
	Location        string
	Education       []string
	ResumePath      string
	ResumeFormat    string
	UpdatedAt       time.Time
}

func (p *SeekerProfile) HasResume() bool {
	return p != nil && p.ResumePath != ""
}
