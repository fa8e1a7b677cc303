package handlers

// previewLimit is how much of a post's or comment's text survives into a
// notification message.
const previewLimit = 50

// truncate cuts s to at most limit runes, appending an ellipsis when it was
// longer.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// postPreview names a post inside a notification message: its leading text,
// or "your post" when it has none.
func postPreview(content string) string {
	if content == "" {
		return "your post"
	}
	return "\"" + truncate(content, previewLimit) + "\""
}
