package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/jessiysantos/fase5/internal/config"
	"github.com/jessiysantos/fase5/internal/extract"
	"github.com/jessiysantos/fase5/internal/models"
)

// Snapshot is an immutable view of the normalized corpus. Profiles are in
// corpus order (sorted source keys); that order is the ranking tie-break.
// A Snapshot is never mutated after Load returns, so any number of concurrent
// queries may read from it.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Profiles []*models.CandidateProfile
	Jobs     []*models.JobRecord
	Excluded int

	profilesByID map[string]*models.CandidateProfile
	jobsByID     map[string]*models.JobRecord
}

// Profile returns the profile with the given identifier, or nil.
func (s *Snapshot) Profile(id string) *models.CandidateProfile {
	return s.profilesByID[id]
}

// Job returns the job record with the given identifier, or nil.
func (s *Snapshot) Job(id string) *models.JobRecord {
	return s.jobsByID[id]
}

// Loader reads the candidate and job sources and produces normalized
// snapshots. Sources may be local files or HTTP(S) URLs; applicants may also
// be an .xlsx spreadsheet.
type Loader struct {
	applicants string
	jobs       string
	resumeDir  string
	extractor  *extract.Extractor
	client     *http.Client
	logger     *zap.Logger
}

// NewLoader creates a loader for the configured corpus sources.
func NewLoader(cfg *config.CorpusConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		applicants: cfg.Applicants,
		jobs:       cfg.Jobs,
		resumeDir:  cfg.ResumeDir,
		extractor:  extract.NewExtractor(),
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// Load reads both sources, normalizes every candidate record, attaches résumé
// files, and returns an immutable snapshot. The snapshot version is a checksum
// of the raw source bytes, so an unchanged corpus yields the same version.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	rawApplicants, err := l.readSource(ctx, l.applicants)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}

	var (
		profiles []*models.CandidateProfile
		excluded int
	)
	if isSpreadsheet(l.applicants) {
		profiles, excluded, err = parseSpreadsheet(rawApplicants)
	} else {
		profiles, excluded, err = parseApplicants(rawApplicants)
	}
	if err != nil {
		return nil, fmt.Errorf("parse applicants: %w", err)
	}

	l.attachResumes(profiles)

	sum := sha256.New()
	sum.Write(rawApplicants)

	var jobs []*models.JobRecord
	if l.jobs != "" {
		rawJobs, jobsErr := l.readSource(ctx, l.jobs)
		if jobsErr != nil {
			// Jobs are optional: free-text matching still works without them.
			l.logger.Warn("jobs source unavailable", zap.String("source", l.jobs), zap.Error(jobsErr))
		} else {
			jobs, jobsErr = parseJobs(rawJobs)
			if jobsErr != nil {
				return nil, fmt.Errorf("parse jobs: %w", jobsErr)
			}
			sum.Write(rawJobs)
		}
	}

	snap := &Snapshot{
		Version:      fmt.Sprintf("%x", sum.Sum(nil))[:16],
		LoadedAt:     time.Now(),
		Profiles:     profiles,
		Jobs:         jobs,
		Excluded:     excluded,
		profilesByID: make(map[string]*models.CandidateProfile, len(profiles)),
		jobsByID:     make(map[string]*models.JobRecord, len(jobs)),
	}
	for _, p := range profiles {
		snap.profilesByID[p.ID] = p
	}
	for _, j := range jobs {
		snap.jobsByID[j.ID] = j
	}

	l.logger.Info("corpus loaded",
		zap.String("version", snap.Version),
		zap.Int("profiles", len(profiles)),
		zap.Int("excluded", excluded),
		zap.Int("jobs", len(jobs)),
	)
	return snap, nil
}

// WatchPaths returns the local source paths a file watcher should observe.
// URL sources have nothing to watch.
func (l *Loader) WatchPaths() []string {
	var paths []string
	for _, source := range []string{l.applicants, l.jobs} {
		if source != "" && !isURL(source) {
			paths = append(paths, source)
		}
	}
	return paths
}

// readSource fetches a URL or reads a local file.
func (l *Loader) readSource(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// attachResumes appends résumé attachment text to each profile that has a
// matching file (<id>.<ext>) under the resume directory. Extraction failures
// are logged and skipped; the inline résumé body is kept either way.
func (l *Loader) attachResumes(profiles []*models.CandidateProfile) {
	if l.resumeDir == "" {
		return
	}
	for _, p := range profiles {
		matches, err := filepath.Glob(filepath.Join(l.resumeDir, p.ID+".*"))
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		for _, path := range matches {
			if !l.extractor.Supported(path) {
				continue
			}
			text, err := l.extractor.Extract(path)
			if err != nil {
				l.logger.Warn("resume extraction failed", zap.String("path", path), zap.Error(err))
				continue
			}
			if text == "" {
				continue
			}
			if p.Resume != "" {
				p.Resume += "\n"
			}
			p.Resume += text
		}
	}
}

// parseApplicants decodes the applicants JSON mapping and normalizes it.
func parseApplicants(data []byte) ([]*models.CandidateProfile, int, error) {
	data = ensureUTF8(data)
	var records map[string]map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, err
	}
	profiles, excluded := NormalizeAll(records)
	return profiles, excluded, nil
}

// parseJobs decodes the jobs JSON mapping, sorted by job ID.
func parseJobs(data []byte) ([]*models.JobRecord, error) {
	data = ensureUTF8(data)
	var records map[string]*models.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	jobs := make([]*models.JobRecord, 0, len(ids))
	for _, id := range ids {
		j := records[id]
		if j == nil {
			continue
		}
		j.ID = id
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ensureUTF8 converts legacy ISO-8859-1 exports to UTF-8. Valid UTF-8 input
// is returned unchanged.
func ensureUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func isSpreadsheet(source string) bool {
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			source = u.Path
		}
	}
	return strings.EqualFold(filepath.Ext(source), ".xlsx")
}
