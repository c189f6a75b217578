// Package e2e provides end-to-end tests; this file builds synthetic corpus
// files in the shapes the loader accepts.
package e2e

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Candidate is the seed for one synthetic applicant record.
type Candidate struct {
	ID     string
	Name   string
	Title  string
	Domain string
	Skills string
}

// ApplicantsJSON renders candidates in the keyed-by-ID applicant corpus shape.
func ApplicantsJSON(candidates []Candidate) ([]byte, error) {
	out := make(map[string]interface{}, len(candidates))
	for _, c := range candidates {
		out[c.ID] = map[string]interface{}{
			"infos_basicas": map[string]string{"nome": c.Name},
			"informacoes_profissionais": map[string]string{
				"titulo_profissional":    c.Title,
				"area_atuacao":           c.Domain,
				"conhecimentos_tecnicos": c.Skills,
			},
		}
	}
	return json.Marshal(out)
}

// Job is the seed for one synthetic job record.
type Job struct {
	ID     string
	Title  string
	Client string
	Skills string
}

// JobsJSON renders jobs in the keyed-by-ID jobs corpus shape.
func JobsJSON(jobs []Job) ([]byte, error) {
	out := make(map[string]interface{}, len(jobs))
	for _, j := range jobs {
		out[j.ID] = map[string]interface{}{
			"informacoes_basicas": map[string]string{
				"titulo_vaga": j.Title,
				"cliente":     j.Client,
			},
			"perfil_vaga": map[string]string{
				"competencia_tecnicas_e_comportamentais": j.Skills,
			},
		}
	}
	return json.Marshal(out)
}

// ApplicantsXLSX renders candidates as a spreadsheet with the Portuguese
// column headers the loader maps.
func ApplicantsXLSX(candidates []Candidate) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"codigo", "nome", "titulo_profissional", "area_atuacao", "conhecimentos_tecnicos"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for row, c := range candidates {
		values := []string{c.ID, c.Name, c.Title, c.Domain, c.Skills}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResumeDOCX builds a minimal .docx with the given text, for resume
// attachment tests.
func ResumeDOCX(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(fmt.Sprintf(
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`,
		text)))
	_ = w.Close()
	return buf.Bytes()
}
