package research

import (
	"testing"
)

func TestCheckBlogTopicsMarksDuplicate(t *testing.T) {
	titles := []string{"El Paso Neighborhoods for Military Families"}
	existing := []ExistingPost{
		{Title: "Best Neighborhoods in El Paso for Military Families"},
	}

	topics := CheckBlogTopics(titles, existing)

	if len(topics) != 1 {
		t.Fatalf("Expected 1 topic, got %d", len(topics))
	}
	if !topics[0].IsDuplicate {
		t.Error("Expected topic to be marked as duplicate")
	}
	if topics[0].ExistingPostTitle != existing[0].Title {
		t.Errorf("Expected existing post title to be recorded, got '%s'", topics[0].ExistingPostTitle)
	}
}

func TestCheckBlogTopicsKeepsNewTopic(t *testing.T) {
	titles := []string{"Fort Bliss PCS Checklist for Incoming Soldiers"}
	existing := []ExistingPost{
		{Title: "Downtown El Paso Restaurant Scene"},
	}

	topics := CheckBlogTopics(titles, existing)

	if topics[0].IsDuplicate {
		t.Error("Expected unrelated topic not to be marked as duplicate")
	}
	if topics[0].ExistingPostTitle != "" {
		t.Errorf("Expected no existing post title, got '%s'", topics[0].ExistingPostTitle)
	}
}

func TestCheckBlogTopicsFirstMatchWins(t *testing.T) {
	titles := []string{"El Paso Housing Market Forecast"}
	existing := []ExistingPost{
		{Title: "Housing Market Forecast for El Paso"},
		{Title: "El Paso Housing Market Outlook"},
	}

	topics := CheckBlogTopics(titles, existing)

	if topics[0].ExistingPostTitle != existing[0].Title {
		t.Errorf("Expected first matching post to win, got '%s'", topics[0].ExistingPostTitle)
	}
}

func TestCheckBlogTopicsTargetKeywordsCapped(t *testing.T) {
	titles := []string{"Fort Bliss Soldiers Buying Houses Near Schools Parks Shopping Centers"}

	topics := CheckBlogTopics(titles, nil)

	if len(topics[0].TargetKeywords) > 5 {
		t.Errorf("Expected at most 5 target keywords, got %d", len(topics[0].TargetKeywords))
	}
	if len(topics[0].TargetKeywords) == 0 {
		t.Error("Expected target keywords to be extracted from the title")
	}
}

func TestCheckBlogTopicsEmptyTitles(t *testing.T) {
	topics := CheckBlogTopics(nil, []ExistingPost{{Title: "anything"}})

	if topics == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(topics) != 0 {
		t.Errorf("Expected no topics, got %d", len(topics))
	}
}
