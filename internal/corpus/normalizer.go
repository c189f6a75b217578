// Package corpus loads raw candidate and job records, normalizes them into
// typed profiles, and memoizes the normalized corpus behind a version token.
package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jessiysantos/fase5/internal/models"
)

// Raw record sub-object keys (applicants.json schema).
const (
	sectionBasics       = "infos_basicas"
	sectionPersonal     = "informacoes_pessoais"
	sectionProfessional = "informacoes_profissionais"
	sectionEducation    = "formacao_e_idiomas"
)

// Normalize flattens one raw nested candidate record into a CandidateProfile.
// Every field access tolerates absent keys and sub-objects; missing values
// become empty strings. The second return is false when the profile carries no
// signal attribute (title, domain, skills) and must be excluded from matching.
func Normalize(id string, record map[string]interface{}) (*models.CandidateProfile, bool) {
	basics := subObject(record, sectionBasics)
	personal := subObject(record, sectionPersonal)
	professional := subObject(record, sectionProfessional)
	education := subObject(record, sectionEducation)

	p := &models.CandidateProfile{
		ID:        id,
		Name:      firstNonEmpty(stringField(basics, "nome"), stringField(personal, "nome")),
		Email:     firstNonEmpty(stringField(basics, "email"), stringField(personal, "email")),
		Location:  stringField(basics, "local"),
		Objective: stringField(basics, "objetivo_profissional"),

		Title:          stringField(professional, "titulo_profissional"),
		Domain:         stringField(professional, "area_atuacao"),
		Skills:         stringField(professional, "conhecimentos_tecnicos"),
		Certifications: joinNonEmpty(stringField(professional, "certificacoes"), stringField(professional, "outras_certificacoes")),
		Seniority:      stringField(professional, "nivel_profissional"),
		Salary:         stringField(professional, "remuneracao"),

		AcademicLevel: stringField(education, "nivel_academico"),
		Courses:       stringField(education, "cursos"),
		EnglishLevel:  stringField(education, "nivel_ingles"),
		SpanishLevel:  stringField(education, "nivel_espanhol"),
		OtherLanguage: stringField(education, "outro_idioma"),

		Resume:      stringField(record, "cv_pt"),
		CurrentRole: stringifyField(record, "cargo_atual"),
	}
	return p, p.HasSignal()
}

// NormalizeAll normalizes a whole raw corpus mapping. Records are processed in
// sorted key order so the resulting slice (the corpus order used for ranking
// tie-breaks) is stable across runs. Unusable records are counted, not errors.
func NormalizeAll(records map[string]map[string]interface{}) (profiles []*models.CandidateProfile, excluded int) {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	profiles = make([]*models.CandidateProfile, 0, len(records))
	for _, k := range keys {
		p, usable := Normalize(k, records[k])
		if !usable {
			excluded++
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, excluded
}

// subObject returns record[key] as a map, or nil when absent or of another type.
func subObject(record map[string]interface{}, key string) map[string]interface{} {
	if record == nil {
		return nil
	}
	m, _ := record[key].(map[string]interface{})
	return m
}

// stringField returns obj[key] stringified, or "" when absent.
func stringField(obj map[string]interface{}, key string) string {
	if obj == nil {
		return ""
	}
	return stringify(obj[key])
}

// stringifyField is stringField for values that may be nested objects
// (e.g. cargo_atual is sometimes a string, sometimes an object).
func stringifyField(record map[string]interface{}, key string) string {
	if record == nil {
		return ""
	}
	return stringify(record[key])
}

// stringify renders a decoded JSON value as text. Objects render their values
// in sorted key order; nil renders empty.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := stringify(val[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
