// Package document builds the text documents fed to the vectorizer. Each
// entity contributes a fixed, ordered list of attributes so that every
// document carries the same positional structure; a missing attribute
// contributes an empty string, never an error.
package document

import (
	"strings"

	"github.com/jessiysantos/fase5/internal/models"
)

// ForCandidate renders a candidate profile as a single text document. The
// attribute list and its order are identical for every candidate; changing
// either changes every score, so treat this as part of the scoring contract.
func ForCandidate(p *models.CandidateProfile) string {
	return join(
		p.Title,
		p.Domain,
		p.Skills,
		p.Certifications,
		p.Seniority,
		p.AcademicLevel,
		p.EnglishLevel,
		p.SpanishLevel,
		p.Salary,
		p.Resume,
		p.CurrentRole,
	)
}

// ForJob renders a structured job record as a single query document, in the
// analogous fixed order. Free-text queries bypass this and are used as-is.
func ForJob(j *models.JobRecord) string {
	return join(
		j.Basics.Title,
		j.Basics.Client,
		j.Basics.ContractType,
		j.Profile.Seniority,
		j.Profile.AcademicLevel,
		j.Profile.EnglishLevel,
		j.Profile.SpanishLevel,
		j.Profile.Domain,
		j.Profile.Responsibilities,
		j.Profile.Competencies,
		j.Profile.Notes,
	)
}

// join concatenates attribute values with single spaces. Empty values
// collapse away so the result never carries runs of whitespace.
func join(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.Join(strings.Fields(v), " ")
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
