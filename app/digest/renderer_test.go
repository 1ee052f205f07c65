package digest

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edguillen/research-digest/app/research"
)

type stubChatClient struct {
	response string
	err      error
	calls    int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.response}},
		},
	}, nil
}

var sampleFindings = []research.Finding{
	{
		Query:                "El Paso market update",
		Category:             research.CategoryMarketIntel,
		MostImportantInsight: "Median price rose to $274,950",
		KeyFindings:          []string{"Inventory up 12%"},
		ActionItems:          []string{"Update listing presentations"},
		Sources:              []research.Source{{Title: "El Paso Times", URL: "https://example.com"}},
	},
	{
		Query:      "site:reddit.com moving to El Paso",
		Category:   research.CategoryPainPoints,
		PainPoints: []research.PainPoint{{Description: "Unsure about safe neighborhoods", Frequency: "common"}},
	},
}

func TestRenderMorningWithoutClientUsesTemplate(t *testing.T) {
	r := NewRenderer("")

	html := r.RenderMorning(context.Background(), sampleFindings, nil, nil)

	if !strings.Contains(html, "Market Intelligence") {
		t.Error("Expected market intelligence section in fallback template")
	}
	if !strings.Contains(html, "Community Pain Points") {
		t.Error("Expected pain points section in fallback template")
	}
	if !strings.Contains(html, "$274,950") {
		t.Error("Expected insight content in rendered HTML")
	}
	if !strings.Contains(html, "https://example.com") {
		t.Error("Expected source link in rendered HTML")
	}
}

func TestRenderMorningGPTRewrite(t *testing.T) {
	client := &stubChatClient{response: "# Good Morning Marina\n\nPolished digest copy."}
	r := NewRendererWithClient(client)

	html := r.RenderMorning(context.Background(), sampleFindings, nil, nil)

	if client.calls != 1 {
		t.Errorf("Expected 1 GPT call, got %d", client.calls)
	}
	if !strings.Contains(html, "Good Morning Marina") {
		t.Error("Expected GPT copy in rendered HTML")
	}
}

func TestRenderMorningFallsBackOnAPIError(t *testing.T) {
	client := &stubChatClient{err: errors.New("rate limited")}
	r := NewRendererWithClient(client)

	html := r.RenderMorning(context.Background(), sampleFindings, nil, nil)

	if !strings.Contains(html, "Market Intelligence") {
		t.Error("Expected fallback template when GPT call fails")
	}
}

func TestRenderMorningFallsBackOnEmptyResponse(t *testing.T) {
	client := &stubChatClient{response: "   "}
	r := NewRendererWithClient(client)

	html := r.RenderMorning(context.Background(), sampleFindings, nil, nil)

	if !strings.Contains(html, "Market Intelligence") {
		t.Error("Expected fallback template when GPT returns blank copy")
	}
}

func TestRenderMorningEmptyRun(t *testing.T) {
	r := NewRenderer("")

	html := r.RenderMorning(context.Background(), nil, nil, nil)

	if !strings.Contains(html, "No new findings today.") {
		t.Error("Expected empty-run message in rendered HTML")
	}
}

func TestRenderMorningUrgentSection(t *testing.T) {
	r := NewRenderer("")
	urgent := []research.UrgentItem{
		{Priority: research.PriorityHigh, Summary: "BAH rates increased", Source: "https://example.com"},
	}

	html := r.RenderMorning(context.Background(), nil, nil, urgent)

	if !strings.Contains(html, "Urgent Items Requiring Attention") {
		t.Error("Expected urgent section heading")
	}
	if !strings.Contains(html, "HIGH") {
		t.Error("Expected uppercased priority label")
	}
}

func TestRenderMorningBlogTopics(t *testing.T) {
	r := NewRenderer("")
	topics := []research.BlogTopic{
		{Title: "New Topic", TargetKeywords: []string{"keyword"}},
		{Title: "Old Topic", IsDuplicate: true, ExistingPostTitle: "Published Post"},
	}

	html := r.RenderMorning(context.Background(), nil, topics, nil)

	if !strings.Contains(html, "New Topic") {
		t.Error("Expected new topic listed")
	}
	if !strings.Contains(html, "Already covered (skip these):") {
		t.Error("Expected duplicate topics under the skip heading")
	}
	if !strings.Contains(html, "Published Post") {
		t.Error("Expected existing post title alongside the duplicate")
	}
}

func TestRenderEvening(t *testing.T) {
	r := NewRenderer("")
	items := []research.UrgentItem{
		{Priority: research.PriorityUrgent, Summary: "Breaking news", Source: "https://example.com"},
	}

	html := r.RenderEvening(items)

	if !strings.Contains(html, "Evening Update") {
		t.Error("Expected evening heading")
	}
	if !strings.Contains(html, "1 new urgent item(s)") {
		t.Error("Expected item count in body")
	}
	if !strings.Contains(html, "Breaking news") {
		t.Error("Expected item summary in body")
	}
}
