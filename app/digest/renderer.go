// Package digest renders the research results into the HTML body of the
// digest emails. When an OpenAI key is configured the body copy is written
// by GPT-4o in markdown; otherwise (or on any API failure) a deterministic
// markdown template is used. Either way the markdown is converted to HTML
// with blackfriday.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/russross/blackfriday/v2"

	"github.com/edguillen/research-digest/app/research"
)

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Renderer struct {
	client ChatClient
}

// NewRenderer builds a renderer. An empty API key disables the GPT path.
func NewRenderer(openAIAPIKey string) *Renderer {
	if openAIAPIKey == "" {
		return &Renderer{}
	}
	return &Renderer{client: openai.NewClient(openAIAPIKey)}
}

// NewRendererWithClient is used by tests to inject a stub client.
func NewRendererWithClient(client ChatClient) *Renderer {
	return &Renderer{client: client}
}

const morningSystemPrompt = `You are a professional email writer for a real estate marketing firm. Write concise, actionable email digests in clean markdown. Use headings, bold priorities, and bullet lists. Always include source links. Warm, professional tone, no emojis. Return only markdown, no code fences.`

// RenderMorning produces the morning digest HTML. The GPT path rewrites
// the structured summary into polished copy; any failure falls back to the
// deterministic template so the digest always goes out.
func (r *Renderer) RenderMorning(ctx context.Context, findings []research.Finding, blogTopics []research.BlogTopic, urgentItems []research.UrgentItem) string {
	summary := morningMarkdown(findings, blogTopics, urgentItems)

	if r.client == nil {
		return toHTML(summary)
	}

	prompt := fmt.Sprintf(`Rewrite the following research digest for Marina Ramirez, a real estate agent in El Paso, Texas specializing in Fort Bliss military relocations and first-time home buyers. Keep every finding, action item, and source link. Focus on the El Paso market only. Include a brief greeting and sign-off.

%s`, summary)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: morningSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	if err != nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		slog.Warn("Digest formatting failed, using fallback template", "error", err)
		return toHTML(summary)
	}

	return toHTML(resp.Choices[0].Message.Content)
}

// RenderEvening produces the evening catchup HTML. The evening email is
// short and goes straight through the template.
func (r *Renderer) RenderEvening(urgentItems []research.UrgentItem) string {
	return toHTML(eveningMarkdown(urgentItems))
}

func toHTML(markdown string) string {
	body := blackfriday.Run([]byte(markdown))
	return emailWrapper(string(body))
}

// emailWrapper applies the fixed mobile-friendly email chrome: centered
// content, teal headers, orange urgent accents.
func emailWrapper(body string) string {
	var b strings.Builder
	b.WriteString(`<div style="max-width:640px;margin:0 auto;text-align:center;font-family:Helvetica,Arial,sans-serif;font-size:16px;color:#1F2937;">`)
	b.WriteString(`<style>h1,h2,h3{color:#0D9488;}h1{font-size:26px;}h2{font-size:20px;}h3{font-size:18px;}strong{color:#F97316;}ul{text-align:left;display:inline-block;}a{color:#0D9488;}</style>`)
	b.WriteString(body)
	b.WriteString(`</div>`)
	return b.String()
}
