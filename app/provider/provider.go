// Package provider queries the Perplexity search API (OpenAI-compatible
// wire format) and turns responses into structured findings.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edguillen/research-digest/app/research"
)

const (
	perplexityModel = "sonar-pro"

	batchSize    = 5
	batchDelay   = 2 * time.Second
	requestLimit = 60 * time.Second
)

// ChatClient is the slice of the OpenAI client the provider needs;
// satisfied by *openai.Client and stubbed in tests.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Provider struct {
	client ChatClient
}

// New builds a provider against the Perplexity API.
func New(apiKey, baseURL string) *Provider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{Timeout: requestLimit}

	return &Provider{client: openai.NewClientWithConfig(config)}
}

// NewWithClient is used by tests to inject a stub client.
func NewWithClient(client ChatClient) *Provider {
	return &Provider{client: client}
}

const comprehensivePrompt = `You are a real estate market research assistant for Marina Ramirez, a realtor in El Paso, Texas specializing in Fort Bliss military relocations and first-time home buyers.

Analyze the search results and extract actionable insights.

Return a JSON object with:
{
  "keyFindings": ["array of 3-5 key findings"],
  "mostImportantInsight": "single most important insight for Marina's business",
  "painPoints": [{"description": "pain point", "frequency": "common" | "occasional" | "rare", "source": "where found"}],
  "solutionRequests": ["what people are asking for"],
  "actionItems": ["specific actions Marina could take"],
  "priority": "urgent" | "high" | "medium" | "low",
  "sources": [{"title": "source name", "url": "url"}]
}

Focus on:
- El Paso real estate market trends
- Fort Bliss military housing and BAH information
- First-time home buyer pain points and needs
- Neighborhood safety concerns
- PCS relocation advice
- Down payment assistance programs
- New construction opportunities in Horizon City and Eastlake`

const urgentOnlyPrompt = `You are a real estate market research assistant for Marina Ramirez, a realtor in El Paso, Texas specializing in Fort Bliss military relocations and first-time home buyers.

Focus ONLY on urgent, breaking news from the last 24 hours.

Return a JSON object with:
{
  "keyFindings": ["array of 1-3 key urgent findings"],
  "mostImportantInsight": "single most critical insight",
  "painPoints": [],
  "solutionRequests": [],
  "actionItems": ["immediate actions Marina should take"],
  "priority": "urgent" | "high" | "medium" | "low",
  "sources": [{"title": "source name", "url": "url"}]
}

If there is NO urgent news, return priority "low" with keyFindings stating "No urgent updates found in the last 24 hours."`

// Mode selects the system prompt: comprehensive for the morning digest,
// urgent-only for the evening catchup.
type Mode int

const (
	ModeComprehensive Mode = iota
	ModeUrgentOnly
)

func (m Mode) systemPrompt() string {
	if m == ModeUrgentOnly {
		return urgentOnlyPrompt
	}
	return comprehensivePrompt
}

// Query runs one research query and parses the response into a finding.
func (p *Provider) Query(ctx context.Context, query research.Query, mode Mode) (research.Finding, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: perplexityModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mode.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: query.Query},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	})
	if err != nil {
		return research.Finding{}, fmt.Errorf("provider request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return research.Finding{}, fmt.Errorf("provider returned no choices")
	}

	return ParseFinding(resp.Choices[0].Message.Content, query), nil
}

// ProcessQueries runs the queries in batches of five. Calls within a batch
// run concurrently; batches execute strictly sequentially with a fixed
// delay between them to respect upstream rate limits. A failed call is
// recorded as an error string and never aborts the batch or the run.
func (p *Provider) ProcessQueries(ctx context.Context, queries []research.Query, mode Mode) ([]research.Finding, []string) {
	findings := make([]research.Finding, 0, len(queries))
	errors := make([]string, 0)

	totalBatches := (len(queries) + batchSize - 1) / batchSize

	for i := 0; i < len(queries); i += batchSize {
		batchNumber := i/batchSize + 1
		end := i + batchSize
		if end > len(queries) {
			end = len(queries)
		}
		batch := queries[i:end]

		slog.Info("Processing query batch", "batch", batchNumber, "total_batches", totalBatches, "queries", len(batch))

		type result struct {
			index   int
			finding research.Finding
			err     error
		}

		results := make(chan result, len(batch))
		for n, query := range batch {
			go func(n int, query research.Query) {
				finding, err := p.Query(ctx, query, mode)
				results <- result{index: n, finding: finding, err: err}
			}(n, query)
		}

		for range batch {
			r := <-results
			if r.err != nil {
				errors = append(errors, fmt.Sprintf("Failed to process query: %s", batch[r.index].Query))
				slog.Warn("Query failed", "query", batch[r.index].Query, "error", r.err)
			} else {
				findings = append(findings, r.finding)
			}
		}

		if end < len(queries) {
			select {
			case <-ctx.Done():
				errors = append(errors, fmt.Sprintf("Run canceled: %v", ctx.Err()))
				return findings, errors
			case <-time.After(batchDelay):
			}
		}
	}

	slog.Info("Completed query processing", "findings", len(findings), "errors", len(errors))
	return findings, errors
}
