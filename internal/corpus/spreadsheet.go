package corpus

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jessiysantos/fase5/internal/models"
)

// spreadsheetColumns maps lowercased header names to profile field setters.
// Headers follow the export schema of the upstream candidate base.
var spreadsheetColumns = map[string]func(*models.CandidateProfile, string){
	"id":                     func(p *models.CandidateProfile, v string) { p.ID = v },
	"codigo":                 func(p *models.CandidateProfile, v string) { p.ID = v },
	"nome":                   func(p *models.CandidateProfile, v string) { p.Name = v },
	"email":                  func(p *models.CandidateProfile, v string) { p.Email = v },
	"local":                  func(p *models.CandidateProfile, v string) { p.Location = v },
	"objetivo_profissional":  func(p *models.CandidateProfile, v string) { p.Objective = v },
	"titulo_profissional":    func(p *models.CandidateProfile, v string) { p.Title = v },
	"area_atuacao":           func(p *models.CandidateProfile, v string) { p.Domain = v },
	"conhecimentos_tecnicos": func(p *models.CandidateProfile, v string) { p.Skills = v },
	"certificacoes":          func(p *models.CandidateProfile, v string) { p.Certifications = v },
	"nivel_profissional":     func(p *models.CandidateProfile, v string) { p.Seniority = v },
	"remuneracao":            func(p *models.CandidateProfile, v string) { p.Salary = v },
	"nivel_academico":        func(p *models.CandidateProfile, v string) { p.AcademicLevel = v },
	"cursos":                 func(p *models.CandidateProfile, v string) { p.Courses = v },
	"nivel_ingles":           func(p *models.CandidateProfile, v string) { p.EnglishLevel = v },
	"nivel_espanhol":         func(p *models.CandidateProfile, v string) { p.SpanishLevel = v },
	"outro_idioma":           func(p *models.CandidateProfile, v string) { p.OtherLanguage = v },
	"cv_pt":                  func(p *models.CandidateProfile, v string) { p.Resume = v },
	"cv":                     func(p *models.CandidateProfile, v string) { p.Resume = v },
	"cargo_atual":            func(p *models.CandidateProfile, v string) { p.CurrentRole = v },
}

// parseSpreadsheet reads candidate profiles from the first sheet of an .xlsx
// export. The first row is the header; unknown columns are ignored. Rows
// without an id column fall back to the row index as a stable identifier.
// Rows without any signal attribute are excluded, mirroring JSON loading.
func parseSpreadsheet(data []byte) ([]*models.CandidateProfile, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, 0, nil
	}

	setters := make([]func(*models.CandidateProfile, string), len(rows[0]))
	for i, header := range rows[0] {
		setters[i] = spreadsheetColumns[strings.ToLower(strings.TrimSpace(header))]
	}

	var (
		profiles []*models.CandidateProfile
		excluded int
	)
	for rowIdx, row := range rows[1:] {
		p := &models.CandidateProfile{}
		for i, cell := range row {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				setters[i](p, v)
			}
		}
		if p.ID == "" {
			p.ID = "row-" + strconv.Itoa(rowIdx+2)
		}
		if !p.HasSignal() {
			excluded++
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, excluded, nil
}
