package matching

import (
	"fmt"
	"strings"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"
)

// Factor weights on the 0..100 score scale.
const (
	weightSkills     = 40.0
	weightExperience = 20.0
	weightLocation   = 15.0
	weightRemote     = 10.0
	weightEducation  = 10.0
	weightResume     = 5.0
)

// experienceGraceYears is how far below the posting's minimum a candidate
// may be and still earn half the experience weight.
const experienceGraceYears = 2

const ReasonProfileIncomplete = "Profile not complete"

type Result struct {
	Score   float64
	Reasons []string
}

// Score rates how well a seeker profile fits a posting on a 0..100 scale.
// A nil profile short-circuits every factor.
func Score(p *profile.SeekerProfile, j job.Job) Result {
	if p == nil {
		return Result{Score: 0, Reasons: []string{ReasonProfileIncomplete}}
	}

	score := 0.0
	reasons := make([]string, 0, 6)

	if len(p.Skills) > 0 && len(j.SkillsRequired) > 0 {
		matched := matchedSkillCount(p.Skills, j.SkillsRequired)
		score += float64(matched) / float64(len(j.SkillsRequired)) * weightSkills
		if matched > 0 {
			reasons = append(reasons, fmt.Sprintf("Matches %d required skills", matched))
		}
	}

	minYears := job.MinYearsFor(j.ExperienceLevel)
	if p.ExperienceYears >= minYears {
		score += weightExperience
		reasons = append(reasons, "Experience level matches")
	} else if p.ExperienceYears >= minYears-experienceGraceYears {
		score += weightExperience / 2
		reasons = append(reasons, "Experience level close")
	}

	if p.Location != "" && j.Location != "" {
		userLoc := strings.ToLower(p.Location)
		jobLoc := strings.ToLower(j.Location)
		if strings.Contains(jobLoc, userLoc) || strings.Contains(userLoc, jobLoc) {
			score += weightLocation
			reasons = append(reasons, "Location matches")
		} else if j.WorkMode == job.WorkModeRemote {
			score += weightLocation
			reasons = append(reasons, "Remote position")
		}
	}

	if j.WorkMode == job.WorkModeRemote {
		score += weightRemote
		reasons = append(reasons, "Remote work available")
	}

	if len(p.Education) > 0 {
		score += weightEducation
		reasons = append(reasons, "Education background available")
	}

	if p.HasResume() {
		score += weightResume
		reasons = append(reasons, "Resume available")
	}

	if score > 100 {
		score = 100
	}

	return Result{Score: score, Reasons: reasons}
}

func matchedSkillCount(userSkills, jobSkills []string) int {
	have := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		have[s] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jobSkills))
	matched := 0
	for _, s := range jobSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := have[s]; ok {
			matched++
		}
	}
	return matched
}
