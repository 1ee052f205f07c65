package research

import (
	"strings"
)

// stopWords covers common English filler plus the generic content-marketing
// vocabulary that would otherwise dominate title comparisons.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {},
	"can": {}, "need": {}, "ought": {}, "used": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "what": {}, "which": {},
	"who": {}, "whom": {}, "whose": {}, "where": {}, "when": {}, "why": {},
	"how": {}, "all": {}, "each": {}, "every": {}, "both": {}, "few": {},
	"more": {}, "most": {}, "other": {}, "some": {}, "such": {}, "no": {},
	"nor": {}, "not": {}, "only": {}, "own": {}, "same": {}, "so": {},
	"than": {}, "too": {}, "very": {}, "just": {}, "your": {},
	"about": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "between": {}, "under": {},
	"again": {}, "further": {}, "then": {}, "once": {}, "here": {},
	"there": {}, "any": {}, "our": {}, "out": {}, "up": {}, "down": {},
	"off": {}, "over": {}, "now": {}, "new": {}, "first": {}, "also": {},
	"get": {}, "go": {}, "going": {}, "know": {}, "like": {}, "make": {},
	"one": {}, "way": {}, "well": {}, "even": {}, "back": {}, "being": {},
	"come": {}, "look": {}, "still": {}, "take": {}, "want": {},
	"think": {}, "see": {}, "time": {}, "year": {}, "good": {},
	"give": {}, "day": {}, "use": {}, "work": {}, "best": {}, "top": {},
	"complete": {}, "guide": {}, "ultimate": {}, "tips": {}, "things": {},
	"essential": {}, "everything": {}, "update": {}, "updates": {},
	"latest": {}, "recent": {}, "today": {}, "2025": {}, "2026": {},
}

// ExtractKeywords normalizes free text into lowercase alphanumeric tokens
// of length >= 3 with stop words removed. Pure, deterministic; empty input
// yields an empty slice.
func ExtractKeywords(text string) []string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' ||
			r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
		}
	}

	keywords := make([]string, 0)
	for _, word := range strings.Fields(b.String()) {
		if len(word) < 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}
