package models

import "testing"

func TestHasSignal(t *testing.T) {
	tests := []struct {
		name    string
		profile CandidateProfile
		want    bool
	}{
		{"title only", CandidateProfile{Title: "Desenvolvedor"}, true},
		{"domain only", CandidateProfile{Domain: "TI"}, true},
		{"skills only", CandidateProfile{Skills: "Java"}, true},
		{"identity only", CandidateProfile{ID: "1", Name: "Ana", Email: "a@b.com"}, false},
		{"resume does not count", CandidateProfile{Resume: "longo curriculo"}, false},
		{"empty", CandidateProfile{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.HasSignal(); got != tt.want {
				t.Errorf("HasSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSalaryAmount(t *testing.T) {
	tests := []struct {
		name   string
		salary string
		want   float64
	}{
		{"brazilian notation", "R$ 4.500,00", 4500},
		{"no prefix", "8.000,00", 8000},
		{"plain integer", "3500", 3500},
		{"with cents", "R$ 1.234,56", 1234.56},
		{"empty", "", 0},
		{"garbage", "a combinar", 0},
		{"negative", "-100", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CandidateProfile{Salary: tt.salary}
			if got := p.SalaryAmount(); got != tt.want {
				t.Errorf("SalaryAmount(%q) = %v, want %v", tt.salary, got, tt.want)
			}
		})
	}
}
