package matching

import (
	"testing"

	"jobmatch/internal/domain/job"
	"jobmatch/internal/domain/profile"
)

func TestScore_NilProfile(t *testing.T) {
	res := Score(nil, job.Job{Title: "Backend Engineer"})
	if res.Score != 0 {
		t.Fatalf("expected score 0, got %v", res.Score)
	}
	if len(res.Reasons) != 1 || res.Reasons[0] != ReasonProfileIncomplete {
		t.Fatalf("expected single %q reason, got %v", ReasonProfileIncomplete, res.Reasons)
	}
}

func TestScore_OnsitePartialSkillMatch(t *testing.T) {
	p := &profile.SeekerProfile{
		Skills:          []string{"python", "django"},
		ExperienceYears: 5,
		Location:        "Austin",
	}
	j := job.Job{
		SkillsRequired:  []string{"python", "react"},
		ExperienceLevel: job.ExperienceMid,
		Location:        "Austin, TX",
		WorkMode:        job.WorkModeOnsite,
	}

	res := Score(p, j)
	if res.Score != 55 {
		t.Fatalf("expected score 55, got %v", res.Score)
	}

	wantReasons := map[string]bool{
		"Matches 1 required skills": false,
		"Experience level matches":  false,
		"Location matches":          false,
	}
	for _, r := range res.Reasons {
		if _, ok := wantReasons[r]; ok {
			wantReasons[r] = true
		}
	}
	for r, seen := range wantReasons {
		if !seen {
			t.Fatalf("missing reason %q in %v", r, res.Reasons)
		}
	}
}

func TestScore_RemoteJobWithoutSkillList(t *testing.T) {
	p := &profile.SeekerProfile{
		Skills:          []string{"python", "django"},
		ExperienceYears: 5,
		Location:        "Austin",
	}
	j := job.Job{
		SkillsRequired:  nil,
		ExperienceLevel: job.ExperienceMid,
		Location:        "Anywhere",
		WorkMode:        job.WorkModeRemote,
	}

	res := Score(p, j)
	// 20 experience + 15 location-via-remote + 10 remote bonus.
	if res.Score != 45 {
		t.Fatalf("expected score 45, got %v", res.Score)
	}

	sawRemotePosition := false
	sawRemoteBonus := false
	for _, r := range res.Reasons {
		if r == "Remote position" {
			sawRemotePosition = true
		}
		if r == "Remote work available" {
			sawRemoteBonus = true
		}
	}
	if !sawRemotePosition || !sawRemoteBonus {
		t.Fatalf("expected both remote reasons, got %v", res.Reasons)
	}
}

func TestScore_ExperienceClose(t *testing.T) {
	p := &profile.SeekerProfile{ExperienceYears: 5}
	j := job.Job{ExperienceLevel: job.ExperienceSenior}

	res := Score(p, j)
	if res.Score != 10 {
		t.Fatalf("expected score 10 for near-miss experience, got %v", res.Score)
	}
}

func TestScore_FullProfileStaysWithinBounds(t *testing.T) {
	p := &profile.SeekerProfile{
		Skills:          []string{"go", "postgresql", "redis"},
		ExperienceYears: 12,
		Location:        "Berlin",
		Education:       []string{"BSc Computer Science"},
		ResumePath:      "/resumes/u1.pdf",
	}
	j := job.Job{
		SkillsRequired:  []string{"go", "postgresql", "redis"},
		ExperienceLevel: job.ExperienceExecutive,
		Location:        "Berlin, Germany",
		WorkMode:        job.WorkModeRemote,
	}

	res := Score(p, j)
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of bounds: %v", res.Score)
	}
	if res.Score != 100 {
		t.Fatalf("expected clamped score 100, got %v", res.Score)
	}
}

func TestScore_SkillMatchCaseInsensitive(t *testing.T) {
	p := &profile.SeekerProfile{Skills: []string{"Go", "PostgreSQL"}}
	j := job.Job{SkillsRequired: []string{"go", "postgresql"}}

	res := Score(p, j)
	// 40 skills + 20 experience (entry-level default has no minimum).
	if res.Score != 60 {
		t.Fatalf("expected score 60, got %v", res.Score)
	}
}
