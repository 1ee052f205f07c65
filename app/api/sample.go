package api

import (
	"time"

	"github.com/edguillen/research-digest/app/research"
)

// sampleDigestData returns representative findings for the email preview.
func sampleDigestData() ([]research.Finding, []research.BlogTopic, []research.UrgentItem) {
	now := time.Now()

	findings := []research.Finding{
		{
			Query:    "El Paso Texas real estate market update 2026",
			Project:  research.ProjectName,
			Category: research.CategoryMarketIntel,
			KeyFindings: []string{
				"Median home prices increased to $274,950",
				"Market transitioning to balanced conditions",
				"2-4% price growth forecast for 2026",
			},
			MostImportantInsight: "El Paso median home prices have risen to $274,950, with experts forecasting 2-4% growth in 2026.",
			ActionItems: []string{
				"Update listing presentations with 2026 market data",
				"Create social media content about price trends",
			},
			Priority: research.PriorityHigh,
			Sources: []research.Source{
				{Title: "El Paso Times Real Estate", URL: "https://elpasotimes.com/real-estate"},
			},
			Timestamp: now,
		},
		{
			Query:    "site:reddit.com moving to El Paso",
			Project:  research.ProjectName,
			Category: research.CategoryPainPoints,
			KeyFindings: []string{
				"Many people asking about safe neighborhoods",
			},
			MostImportantInsight: "Newcomers repeatedly ask which El Paso neighborhoods are safest for families.",
			PainPoints: []research.PainPoint{
				{Description: "Unsure which neighborhoods are safe", Frequency: "common", Source: "r/ElPaso"},
			},
			SolutionRequests: []string{"Neighborhood safety guide"},
			Priority:         research.PriorityMedium,
			Timestamp:        now,
		},
	}

	blogTopics := []research.BlogTopic{
		{
			Title:          "Fort Bliss BAH Guide 2026: What Your Housing Allowance Buys in El Paso",
			TargetKeywords: []string{"fort", "bliss", "bah", "housing", "allowance"},
		},
		{
			Title:             "Best Neighborhoods in El Paso for Military Families",
			TargetKeywords:    []string{"neighborhoods", "paso", "military", "families"},
			IsDuplicate:       true,
			ExistingPostTitle: "Top El Paso Neighborhoods for Military Families",
		},
	}

	urgentItems := []research.UrgentItem{
		{
			Project:   research.ProjectName,
			Summary:   "Fort Bliss BAH rates increased 4.2% effective immediately.",
			Source:    "https://www.defensetravel.dod.mil",
			Priority:  research.PriorityHigh,
			Category:  research.CategoryMarketIntel,
			Timestamp: now,
		},
	}

	return findings, blogTopics, urgentItems
}
