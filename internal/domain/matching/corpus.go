package matching

import (
	"strings"

	"jobmatch/internal/domain/job"
)

// corpusSeparator keeps field boundaries visible to the embedding model
// without introducing markup it would have to learn to ignore.
const corpusSeparator = " . "

// BuildCorpus flattens a posting into the single text blob used as embedding
// input and as keyword-comparison material. Field order is fixed and empty
// fields are omitted, so the output is stable for an unchanged posting.
func BuildCorpus(j job.Job) string {
	parts := make([]string, 0, 6)

	if j.Title != "" {
		parts = append(parts, j.Title)
	}
	if j.Company != "" {
		parts = append(parts, j.Company)
	}
	if j.Location != "" {
		parts = append(parts, j.Location)
	}
	if j.Description != "" {
		parts = append(parts, j.Description)
	}
	if skills := strings.TrimSpace(strings.Join(j.SkillsRequired, " ")); skills != "" {
		parts = append(parts, skills)
	}
	if j.Requirements != "" {
		parts = append(parts, j.Requirements)
	}

	return strings.Join(parts, corpusSeparator)
}
