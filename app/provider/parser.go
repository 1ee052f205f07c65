package provider

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/edguillen/research-digest/app/research"
)

var (
	jsonFencePattern  = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	plainFencePattern = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

type rawPainPoint struct {
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Source      string `json:"source"`
}

type rawSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type rawFinding struct {
	KeyFindings          []string       `json:"keyFindings"`
	MostImportantInsight string         `json:"mostImportantInsight"`
	PainPoints           []rawPainPoint `json:"painPoints"`
	SolutionRequests     []string       `json:"solutionRequests"`
	ActionItems          []string       `json:"actionItems"`
	Priority             string         `json:"priority"`
	Sources              []rawSource    `json:"sources"`
}

// ParseFinding extracts the structured payload from a provider response.
// Responses may wrap the JSON in markdown fences or surround it with prose;
// when no parseable JSON is found the raw text degrades to best-effort
// defaults instead of failing: the truncated response becomes the single
// key finding and priority defaults to medium.
func ParseFinding(rawResponse string, query research.Query) research.Finding {
	finding := research.Finding{
		Query:       query.Query,
		Project:     query.Project,
		Category:    query.Category,
		RawResponse: rawResponse,
		Timestamp:   time.Now(),
	}

	var raw rawFinding
	parsed := false
	if jsonStr := extractJSON(rawResponse); jsonStr != "" {
		if err := json.Unmarshal([]byte(jsonStr), &raw); err == nil {
			parsed = true
		}
	}

	if parsed && len(raw.KeyFindings) > 0 {
		finding.KeyFindings = raw.KeyFindings
	} else {
		finding.KeyFindings = []string{truncate(rawResponse, 500)}
	}

	if parsed && raw.MostImportantInsight != "" {
		finding.MostImportantInsight = raw.MostImportantInsight
	} else if len(finding.KeyFindings) > 0 && finding.KeyFindings[0] != "" {
		finding.MostImportantInsight = finding.KeyFindings[0]
	} else {
		finding.MostImportantInsight = "No specific insight extracted"
	}

	finding.PainPoints = make([]research.PainPoint, 0, len(raw.PainPoints))
	for _, pp := range raw.PainPoints {
		point := research.PainPoint{
			Description: pp.Description,
			Frequency:   pp.Frequency,
			Source:      pp.Source,
		}
		if point.Description == "" {
			point.Description = "Unknown"
		}
		if point.Frequency == "" {
			point.Frequency = "occasional"
		}
		finding.PainPoints = append(finding.PainPoints, point)
	}

	finding.SolutionRequests = raw.SolutionRequests
	if finding.SolutionRequests == nil {
		finding.SolutionRequests = []string{}
	}

	finding.ActionItems = raw.ActionItems
	if finding.ActionItems == nil {
		finding.ActionItems = []string{}
	}

	if priority := research.Priority(raw.Priority); priority.Valid() {
		finding.Priority = priority
	} else {
		finding.Priority = research.PriorityMedium
	}

	finding.Sources = make([]research.Source, 0, len(raw.Sources))
	for _, s := range raw.Sources {
		source := research.Source{Title: s.Title, URL: s.URL}
		if source.Title == "" {
			source.Title = "Unknown Source"
		}
		finding.Sources = append(finding.Sources, source)
	}

	return finding
}

func extractJSON(response string) string {
	if m := jsonFencePattern.FindStringSubmatch(response); m != nil {
		return m[1]
	}
	if m := plainFencePattern.FindStringSubmatch(response); m != nil {
		return m[1]
	}
	if m := jsonObjectPattern.FindString(response); m != "" {
		return m
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
