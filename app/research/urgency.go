package research

import (
	"strings"
)

// noUrgentPhrases are the provider's own ways of saying "nothing happened".
// A finding carrying one of these is not actionable no matter what priority
// the provider assigned.
var noUrgentPhrases = []string{
	"no urgent updates",
	"no breaking news",
	"no significant developments",
	"nothing urgent",
}

// IsUrgent reports whether a finding counts as an actionable urgent item:
// priority high or urgent, and no negation phrase in the insight.
func IsUrgent(finding Finding) bool {
	if finding.Priority != PriorityUrgent && finding.Priority != PriorityHigh {
		return false
	}

	summary := strings.ToLower(finding.MostImportantInsight)
	for _, phrase := range noUrgentPhrases {
		if strings.Contains(summary, phrase) {
			return false
		}
	}

	return true
}

// UrgentItemFrom projects a finding that passed IsUrgent into an urgent
// item. The source is the first source URL, falling back to the query text.
func UrgentItemFrom(finding Finding) UrgentItem {
	source := finding.Query
	if len(finding.Sources) > 0 && finding.Sources[0].URL != "" {
		source = finding.Sources[0].URL
	}

	return UrgentItem{
		Project:   finding.Project,
		Summary:   finding.MostImportantInsight,
		Source:    source,
		Priority:  finding.Priority,
		Category:  finding.Category,
		Timestamp: finding.Timestamp,
	}
}

// FilterNewUrgentItems returns the evening items not already reported in
// the morning. Two items are the same occurrence when they belong to the
// same project and more than half of the evening summary's words appear in
// the morning summary. Splitting is whitespace-only on lowercased text;
// this check is deliberately cruder than keyword extraction since it runs
// over short same-day summaries.
func FilterNewUrgentItems(eveningItems, morningItems []UrgentItem) []UrgentItem {
	newItems := make([]UrgentItem, 0, len(eveningItems))

	for _, evening := range eveningItems {
		if !matchesAnyMorning(evening, morningItems) {
			newItems = append(newItems, evening)
		}
	}

	return newItems
}

func matchesAnyMorning(evening UrgentItem, morningItems []UrgentItem) bool {
	eveningWords := strings.Fields(strings.ToLower(evening.Summary))
	if len(eveningWords) == 0 {
		return false
	}

	for _, morning := range morningItems {
		if morning.Project != evening.Project {
			continue
		}

		morningWords := strings.Fields(strings.ToLower(morning.Summary))

		matching := 0
		for _, word := range eveningWords {
			for _, mw := range morningWords {
				if word == mw {
					matching++
					break
				}
			}
		}

		overlapRatio := float64(matching) / float64(len(eveningWords))
		if overlapRatio > CrossRunThreshold {
			return true
		}
	}

	return false
}
