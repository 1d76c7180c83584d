package analysis

import (
	"strings"

	"github.com/unowned-ai/diary/pkg/diaries"
)

// FindEntriesContaining returns the entries whose text contains word as a
// case-insensitive substring, in collection order. A substring hit is enough:
// "cat" finds "concatenate" even though the dictionary never counts it.
func FindEntriesContaining(word string, c diaries.Collection) diaries.Collection {
	needle := strings.ToLower(word)
	found := diaries.Collection{}
	for _, e := range c {
		if strings.Contains(strings.ToLower(e.Text), needle) {
			found = append(found, e)
		}
	}
	return found
}
