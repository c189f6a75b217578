// Package models defines core data structures for candidates, jobs, and match results.
package models

import (
	"strconv"
	"strings"
)

// CandidateProfile is a flattened candidate record. Every attribute except ID is
// optional; an absent attribute is an empty string, never an error.
type CandidateProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`

	Objective      string `json:"objective,omitempty"`
	Title          string `json:"title,omitempty"`
	Domain         string `json:"domain,omitempty"`
	Skills         string `json:"skills,omitempty"`
	Certifications string `json:"certifications,omitempty"`
	Seniority      string `json:"seniority,omitempty"`
	Salary         string `json:"salary,omitempty"`

	AcademicLevel string `json:"academic_level,omitempty"`
	Courses       string `json:"courses,omitempty"`
	EnglishLevel  string `json:"english_level,omitempty"`
	SpanishLevel  string `json:"spanish_level,omitempty"`
	OtherLanguage string `json:"other_language,omitempty"`

	Resume      string `json:"resume,omitempty"`
	CurrentRole string `json:"current_role,omitempty"`
}

// HasSignal reports whether the profile carries at least one scoreable signal
// attribute (title, domain, or skills). Profiles without any are excluded from
// matching; identity fields alone are display-only and do not count.
func (p *CandidateProfile) HasSignal() bool {
	return p.Title != "" || p.Domain != "" || p.Skills != ""
}

// SalaryAmount parses the salary expectation in Brazilian currency notation
// (e.g. "R$ 4.500,00") into a float. Returns 0 when the field is absent or
// cannot be parsed; salary is display-only and never influences scoring.
func (p *CandidateProfile) SalaryAmount() float64 {
	s := strings.TrimSpace(p.Salary)
	if s == "" {
		return 0
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
