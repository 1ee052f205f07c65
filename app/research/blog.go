package research

// CheckBlogTopics annotates candidate blog topic titles with a duplicate
// verdict against the existing posts. Posts are checked in order and the
// first match wins; no match across all posts means the topic is new.
func CheckBlogTopics(titles []string, existing []ExistingPost) []BlogTopic {
	results := make([]BlogTopic, 0, len(titles))

	for _, title := range titles {
		topic := BlogTopic{
			Title:          title,
			TargetKeywords: topKeywords(title, 5),
		}

		for _, post := range existing {
			if TitlesSimilar(title, post.Title) {
				topic.IsDuplicate = true
				topic.ExistingPostTitle = post.Title
				break
			}
		}

		results = append(results, topic)
	}

	return results
}

func topKeywords(text string, n int) []string {
	keywords := ExtractKeywords(text)
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
