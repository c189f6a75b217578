package models

// JobRecord is a structured job opening as stored in the jobs corpus
// (vagas.json). Field tags follow the upstream source schema.
type JobRecord struct {
	ID      string     `json:"-"`
	Basics  JobBasics  `json:"informacoes_basicas"`
	Profile JobProfile `json:"perfil_vaga"`
}

// JobBasics holds the administrative header of a job opening.
type JobBasics struct {
	Title        string `json:"titulo_vaga"`
	Client       string `json:"cliente"`
	ContractType string `json:"tipo_contratacao"`
}

// JobProfile holds the requirements side of a job opening.
type JobProfile struct {
	Seniority        string `json:"nivel profissional"`
	AcademicLevel    string `json:"nivel_academico"`
	EnglishLevel     string `json:"nivel_ingles"`
	SpanishLevel     string `json:"nivel_espanhol"`
	Domain           string `json:"areas_atuacao"`
	Responsibilities string `json:"principais_atividades"`
	Competencies     string `json:"competencia_tecnicas_e_comportamentais"`
	Notes            string `json:"demais_observacoes"`
}
