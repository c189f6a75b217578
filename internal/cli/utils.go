// Package cli provides output formatting for the command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jessiysantos/fase5/internal/models"
	"github.com/jessiysantos/fase5/pkg/utils"
)

// OutputFormat is the format for match result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one result per line, for piping.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputCompact, OutputJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
}

// WriteMatchResults writes a match response to w in the given format.
func WriteMatchResults(w io.Writer, response *models.MatchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeMatchResultsCompact(w, response)
		return nil
	default:
		writeMatchResultsText(w, response)
		return nil
	}
}

func writeMatchResultsText(w io.Writer, response *models.MatchResponse) {
	fmt.Fprintf(w, "\nQuery: %s\n", response.Query)
	fmt.Fprintf(w, "Found %d candidate(s) in %dms (strategy: %s, corpus: %s)\n\n",
		response.Total, response.QueryTime, response.Strategy, response.CorpusVersion)
	if response.Total == 0 {
		if response.Message != "" {
			fmt.Fprintln(w, response.Message)
		}
		return
	}
	for _, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Similarity: %s\n", result.Rank, result.Similarity)
		fmt.Fprintf(w, "ID: %s\n", result.Candidate.ID)
		if result.Candidate.Name != "" {
			fmt.Fprintf(w, "Name: %s\n", result.Candidate.Name)
		}
		if result.Candidate.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", result.Candidate.Title)
		}
		if result.Candidate.Skills != "" {
			fmt.Fprintf(w, "Skills: %s\n", utils.Truncate(result.Candidate.Skills, 200))
		}
		if result.Keywords != "" {
			fmt.Fprintf(w, "Keywords: %s\n", result.Keywords)
		}
		fmt.Fprintln(w)
	}
}

func writeMatchResultsCompact(w io.Writer, response *models.MatchResponse) {
	for _, result := range response.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			result.Rank, result.Similarity, result.Candidate.ID,
			result.Candidate.Name, result.Keywords)
	}
}
