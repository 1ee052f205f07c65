package digest

import (
	"fmt"
	"strings"

	"github.com/edguillen/research-digest/app/research"
)

// morningMarkdown builds the deterministic digest body. It doubles as the
// GPT prompt material and as the fallback email when the GPT call fails.
func morningMarkdown(findings []research.Finding, blogTopics []research.BlogTopic, urgentItems []research.UrgentItem) string {
	var b strings.Builder

	b.WriteString("# Today's El Paso Market Research\n\n")
	headerLen := b.Len()

	if len(urgentItems) > 0 {
		b.WriteString("## Urgent Items Requiring Attention\n\n")
		for _, item := range urgentItems {
			fmt.Fprintf(&b, "- **%s:** %s ([source](%s))\n",
				strings.ToUpper(string(item.Priority)), item.Summary, item.Source)
		}
		b.WriteString("\n")
	}

	writeFindings(&b, "Market Intelligence", findingsByCategory(findings, research.CategoryMarketIntel))
	writePainPoints(&b, findingsByCategory(findings, research.CategoryPainPoints))
	writeBlogTopics(&b, blogTopics)

	if b.Len() == headerLen {
		b.WriteString("No new findings today.\n")
	}

	return b.String()
}

func eveningMarkdown(urgentItems []research.UrgentItem) string {
	var b strings.Builder

	b.WriteString("# Evening Update\n\n")
	fmt.Fprintf(&b, "%d new urgent item(s) since this morning's digest.\n\n", len(urgentItems))

	for _, item := range urgentItems {
		fmt.Fprintf(&b, "- **%s:** %s ([source](%s))\n",
			strings.ToUpper(string(item.Priority)), item.Summary, item.Source)
	}

	return b.String()
}

func findingsByCategory(findings []research.Finding, category research.Category) []research.Finding {
	matched := make([]research.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Category == category {
			matched = append(matched, f)
		}
	}
	return matched
}

func writeFindings(b *strings.Builder, heading string, findings []research.Finding) {
	if len(findings) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, f := range findings {
		fmt.Fprintf(b, "### %s\n\n", f.Query)
		fmt.Fprintf(b, "**Most important:** %s\n\n", f.MostImportantInsight)

		for _, kf := range f.KeyFindings {
			fmt.Fprintf(b, "- %s\n", kf)
		}
		if len(f.ActionItems) > 0 {
			b.WriteString("\nAction items:\n")
			for _, a := range f.ActionItems {
				fmt.Fprintf(b, "- %s\n", a)
			}
		}
		writeSources(b, f.Sources)
		b.WriteString("\n")
	}
}

func writePainPoints(b *strings.Builder, findings []research.Finding) {
	if len(findings) == 0 {
		return
	}

	b.WriteString("## Community Pain Points\n\n")
	for _, f := range findings {
		fmt.Fprintf(b, "### %s\n\n", f.Query)
		for _, pp := range f.PainPoints {
			fmt.Fprintf(b, "- %s (%s)\n", pp.Description, pp.Frequency)
		}
		if len(f.SolutionRequests) > 0 {
			b.WriteString("\nWhat people want:\n")
			for _, sr := range f.SolutionRequests {
				fmt.Fprintf(b, "- %s\n", sr)
			}
		}
		writeSources(b, f.Sources)
		b.WriteString("\n")
	}
}

func writeBlogTopics(b *strings.Builder, topics []research.BlogTopic) {
	if len(topics) == 0 {
		return
	}

	b.WriteString("## Blog Topic Recommendations\n\n")

	wroteNew := false
	for _, t := range topics {
		if t.IsDuplicate {
			continue
		}
		if !wroteNew {
			b.WriteString("New topics to write:\n")
			wroteNew = true
		}
		fmt.Fprintf(b, "- %s (keywords: %s)\n", t.Title, strings.Join(t.TargetKeywords, ", "))
	}

	wroteDup := false
	for _, t := range topics {
		if !t.IsDuplicate {
			continue
		}
		if !wroteDup {
			b.WriteString("\nAlready covered (skip these):\n")
			wroteDup = true
		}
		fmt.Fprintf(b, "- %s (similar to: %s)\n", t.Title, t.ExistingPostTitle)
	}

	b.WriteString("\n")
}

func writeSources(b *strings.Builder, sources []research.Source) {
	if len(sources) == 0 {
		return
	}

	b.WriteString("\nSources:\n")
	for _, s := range sources {
		if s.URL != "" {
			fmt.Fprintf(b, "- [%s](%s)\n", s.Title, s.URL)
		} else {
			fmt.Fprintf(b, "- %s\n", s.Title)
		}
	}
}
