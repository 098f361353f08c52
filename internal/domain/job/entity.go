package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
)

const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

// MinYearsFor maps an experience level to the minimum years of experience a
// posting at that level expects. Unknown levels map to 0.
func MinYearsFor(level string) int {
	switch level {
	case ExperienceEntry:
		return 0
	case ExperienceMid:
		return 3
	case ExperienceSenior:
		return 7
	case ExperienceExecutive:
		return 10
	default:
		return 0
	}
}

type Job struct {
	ID              uuid.UUID
	Title           string
	Company         string
	Location        string
	Description     string
	Requirements    string
	SkillsRequired  []string
	WorkMode        string
	ExperienceLevel string
	IsActive        bool
	Deadline        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (j Job) IsExpired(now time.Time) bool {
	if j.Deadline == nil {
		return false
	}
	return now.After(*j.Deadline)
}
