package chunker

import "strings"

// EstimateTokens gives a rough token count for sizing reports. Word count
// scaled by ~1.33 tokens per English word; exact tokenization is not needed
// for chunk budgeting.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		if len(text) > 0 {
			return 1
		}
		return 0
	}
	return int(float64(words) * 1.33)
}
