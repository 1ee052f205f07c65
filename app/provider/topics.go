package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	openai "github.com/sashabaranov/go-openai"
)

const blogTopicsPrompt = `As a real estate SEO expert, suggest 5 blog topics for a realtor in El Paso, Texas who specializes in:
- Fort Bliss military relocations and PCS moves
- First-time home buyers
- Local neighborhoods (especially safe areas)
- New construction in Horizon City and Eastlake
- Down payment assistance programs

Focus on topics with high search intent that would attract potential clients. Consider local SEO opportunities.

Return ONLY a JSON array of objects:
[
  {"title": "Blog title with SEO keywords", "targetKeywords": ["keyword1", "keyword2", "keyword3"]}
]`

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// TrendingBlogTopics asks the provider for blog topic suggestions and
// returns their titles. Keyword extraction happens later during the
// duplicate check.
func (p *Provider) TrendingBlogTopics(ctx context.Context) ([]string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: perplexityModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an SEO expert for real estate content marketing."},
			{Role: openai.ChatMessageRoleUser, Content: blogTopicsPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("blog topics request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("blog topics request returned no choices")
	}

	raw := jsonArrayPattern.FindString(resp.Choices[0].Message.Content)
	if raw == "" {
		return []string{}, nil
	}

	var parsed []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse blog topics response: %w", err)
	}

	titles := make([]string, 0, len(parsed))
	for _, t := range parsed {
		if t.Title != "" {
			titles = append(titles, t.Title)
		}
	}

	return titles, nil
}
