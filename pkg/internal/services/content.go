package services

const TruncateContentThreshold = 160

// TruncateContent shortens feed copies of long posts; the full content
// stays on the detail read.
func TruncateContent(content string) string {
	runes := []rune(content)
	if len(runes) < TruncateContentThreshold {
		return content
	}
	return string(runes[:TruncateContentThreshold]) + "..."
}

const TruncateContentShortThreshold = 80

func TruncateContentShort(content string) string {
	runes := []rune(content)
	if len(runes) < TruncateContentShortThreshold {
		return content
	}
	return string(runes[:TruncateContentShortThreshold]) + "..."
}
