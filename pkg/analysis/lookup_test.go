package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unowned-ai/diary/pkg/diaries"
)

func TestFindEntriesContaining_Substring(t *testing.T) {
	c := entries(
		"1/1/2025", "We concatenate strings",
		"1/2/2025", "no felines here",
		"1/3/2025", "The CAT slept",
	)

	found := FindEntriesContaining("cat", c)
	assert.Equal(t, []string{"1/1/2025", "1/3/2025"}, datesOf(found))

	// The dictionary only knows whole tokens, so the substring hit has no dictionary date.
	cat, ok := BuildIndex(c).Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, []string{"1/3/2025"}, cat.Dates)
}

func TestFindEntriesContaining_NoMatch(t *testing.T) {
	c := entries("1/1/2025", "quiet day")

	found := FindEntriesContaining("storm", c)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestGoal(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount(" one\ttwo\nthree "))

	var words []byte
	for i := 0; i < GoalWords; i++ {
		words = append(words, "word "...)
	}
	assert.True(t, GoalReached(string(words)))
	assert.False(t, GoalReached("too short"))
	assert.InDelta(t, 0.5, GoalProgress("a b c d e f g h i j k l m n o p q r s t u v w x y"), 0.001)
	assert.Equal(t, 1.0, GoalProgress(string(words)+string(words)))
}

func datesOf(c diaries.Collection) []string {
	out := []string{}
	for _, e := range c {
		out = append(out, e.Date)
	}
	return out
}
