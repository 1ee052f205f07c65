package research

import (
	"log/slog"
	"strings"
)

// Filterer partitions incoming findings into new vs already-covered by
// comparing each finding's key content against the covered-topics ledger.
// It never mutates the ledger; the caller appends topics only after the
// digest was actually delivered.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the findings not similar to any covered topic along with the
// number of findings dropped as duplicates. Match is existential, so the
// order of covered topics does not matter.
func (f *Filterer) Run(findings []Finding, covered []CoveredTopic) ([]Finding, int) {
	newFindings := make([]Finding, 0, len(findings))
	duplicateCount := 0

	for _, finding := range findings {
		keywords := ExtractKeywords(comparisonText(finding))

		isDuplicate := false
		for _, topic := range covered {
			if KeywordsSimilar(keywords, topic.Keywords, CoveredTopicThreshold) {
				isDuplicate = true
				break
			}
		}

		if isDuplicate {
			duplicateCount++
			slog.Debug("Filtered duplicate finding", "insight", truncate(finding.MostImportantInsight, 50))
		} else {
			newFindings = append(newFindings, finding)
		}
	}

	return newFindings, duplicateCount
}

// comparisonText builds the text a finding is matched on: the most
// important insight plus every key finding.
func comparisonText(finding Finding) string {
	parts := make([]string, 0, len(finding.KeyFindings)+1)
	parts = append(parts, finding.MostImportantInsight)
	parts = append(parts, finding.KeyFindings...)
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
