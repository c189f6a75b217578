package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/corpus"
)

func TestE2E_SpreadsheetCorpus(t *testing.T) {
	dir := t.TempDir()
	data, err := ApplicantsXLSX(e2eCandidates)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "applicants.xlsx")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	loader := corpus.NewLoader(&config.CorpusConfig{Applicants: path}, nil)
	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Profiles) != len(e2eCandidates) {
		t.Fatalf("profiles = %d, want %d", len(snap.Profiles), len(e2eCandidates))
	}
	p := snap.Profile("31000")
	if p == nil {
		t.Fatal("candidate 31000 missing from spreadsheet corpus")
	}
	if p.Name != "Ana Souza" || !strings.Contains(p.Skills, "Kafka") {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestE2E_ResumeAttachments(t *testing.T) {
	dir := t.TempDir()
	resumeDir := filepath.Join(dir, "resumes")
	if err := os.MkdirAll(resumeDir, 0755); err != nil {
		t.Fatal(err)
	}

	applicants, err := ApplicantsJSON(e2eCandidates[:2])
	if err != nil {
		t.Fatal(err)
	}
	applicantsPath := filepath.Join(dir, "applicants.json")
	if err := os.WriteFile(applicantsPath, applicants, 0600); err != nil {
		t.Fatal(err)
	}
	docx := ResumeDOCX("experiencia solida com arquitetura de microservices")
	if err := os.WriteFile(filepath.Join(resumeDir, "31000.docx"), docx, 0644); err != nil {
		t.Fatal(err)
	}

	loader := corpus.NewLoader(&config.CorpusConfig{
		Applicants: applicantsPath,
		ResumeDir:  resumeDir,
	}, nil)
	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p := snap.Profile("31000")
	if p == nil {
		t.Fatal("candidate 31000 missing")
	}
	if !strings.Contains(p.Resume, "microservices") {
		t.Errorf("resume text not attached: %q", p.Resume)
	}
	if other := snap.Profile("31001"); other != nil && other.Resume != "" {
		t.Errorf("candidate without resume file got resume %q", other.Resume)
	}
}
