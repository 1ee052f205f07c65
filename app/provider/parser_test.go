package provider

import (
	"strings"
	"testing"

	"github.com/edguillen/research-digest/app/research"
)

var testQuery = research.Query{
	Query:    "El Paso housing market",
	Project:  research.ProjectName,
	Category: research.CategoryMarketIntel,
}

func TestParseFindingJSONFence(t *testing.T) {
	response := "Here is what I found:\n```json\n{" +
		`"keyFindings": ["Median price rose to $274,950", "Inventory up 12%"],` +
		`"mostImportantInsight": "Prices rising despite inventory growth",` +
		`"priority": "high",` +
		`"sources": [{"title": "El Paso Times", "url": "https://example.com"}]` +
		"}\n```\nLet me know if you need more."

	finding := ParseFinding(response, testQuery)

	if len(finding.KeyFindings) != 2 {
		t.Fatalf("Expected 2 key findings, got %d", len(finding.KeyFindings))
	}
	if finding.MostImportantInsight != "Prices rising despite inventory growth" {
		t.Errorf("Expected parsed insight, got '%s'", finding.MostImportantInsight)
	}
	if finding.Priority != research.PriorityHigh {
		t.Errorf("Expected priority high, got '%s'", finding.Priority)
	}
	if len(finding.Sources) != 1 || finding.Sources[0].Title != "El Paso Times" {
		t.Errorf("Expected parsed source, got %v", finding.Sources)
	}
	if finding.Query != testQuery.Query {
		t.Errorf("Expected query carried through, got '%s'", finding.Query)
	}
}

func TestParseFindingPlainFence(t *testing.T) {
	response := "```\n{\"keyFindings\": [\"one finding\"], \"mostImportantInsight\": \"the insight\", \"priority\": \"low\"}\n```"

	finding := ParseFinding(response, testQuery)

	if finding.MostImportantInsight != "the insight" {
		t.Errorf("Expected insight from plain fence, got '%s'", finding.MostImportantInsight)
	}
	if finding.Priority != research.PriorityLow {
		t.Errorf("Expected priority low, got '%s'", finding.Priority)
	}
}

func TestParseFindingBareJSON(t *testing.T) {
	response := `Some preamble {"keyFindings": ["bare finding"], "mostImportantInsight": "bare insight", "priority": "urgent"} trailing text`

	finding := ParseFinding(response, testQuery)

	if finding.MostImportantInsight != "bare insight" {
		t.Errorf("Expected insight from bare JSON, got '%s'", finding.MostImportantInsight)
	}
}

func TestParseFindingMalformedResponse(t *testing.T) {
	response := "The El Paso market is doing fine, nothing structured here."

	finding := ParseFinding(response, testQuery)

	if len(finding.KeyFindings) != 1 || finding.KeyFindings[0] != response {
		t.Errorf("Expected raw response as the single key finding, got %v", finding.KeyFindings)
	}
	if finding.MostImportantInsight != response {
		t.Errorf("Expected insight to fall back to first key finding, got '%s'", finding.MostImportantInsight)
	}
	if finding.Priority != research.PriorityMedium {
		t.Errorf("Expected default priority medium, got '%s'", finding.Priority)
	}
	if finding.RawResponse != response {
		t.Error("Expected raw response preserved")
	}
	if finding.SolutionRequests == nil || finding.ActionItems == nil {
		t.Error("Expected empty slices, not nil")
	}
}

func TestParseFindingLongMalformedResponseTruncated(t *testing.T) {
	response := strings.Repeat("x", 600)

	finding := ParseFinding(response, testQuery)

	if len(finding.KeyFindings[0]) != 500 {
		t.Errorf("Expected raw fallback truncated to 500 characters, got %d", len(finding.KeyFindings[0]))
	}
	if finding.RawResponse != response {
		t.Error("Expected full raw response preserved despite truncated key finding")
	}
}

func TestParseFindingInvalidPriorityDefaultsToMedium(t *testing.T) {
	response := `{"keyFindings": ["a"], "mostImportantInsight": "b", "priority": "catastrophic"}`

	finding := ParseFinding(response, testQuery)

	if finding.Priority != research.PriorityMedium {
		t.Errorf("Expected unknown priority to default to medium, got '%s'", finding.Priority)
	}
}

func TestParseFindingPainPointDefaults(t *testing.T) {
	response := `{"keyFindings": ["a"], "mostImportantInsight": "b", "priority": "medium", "painPoints": [{"description": "", "frequency": ""}]}`

	finding := ParseFinding(response, testQuery)

	if len(finding.PainPoints) != 1 {
		t.Fatalf("Expected 1 pain point, got %d", len(finding.PainPoints))
	}
	if finding.PainPoints[0].Description != "Unknown" {
		t.Errorf("Expected default description 'Unknown', got '%s'", finding.PainPoints[0].Description)
	}
	if finding.PainPoints[0].Frequency != "occasional" {
		t.Errorf("Expected default frequency 'occasional', got '%s'", finding.PainPoints[0].Frequency)
	}
}

func TestParseFindingUntitledSource(t *testing.T) {
	response := `{"keyFindings": ["a"], "mostImportantInsight": "b", "priority": "medium", "sources": [{"title": "", "url": "https://example.com"}]}`

	finding := ParseFinding(response, testQuery)

	if finding.Sources[0].Title != "Unknown Source" {
		t.Errorf("Expected default source title, got '%s'", finding.Sources[0].Title)
	}
}
