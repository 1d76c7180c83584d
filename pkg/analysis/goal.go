package analysis

import "strings"

// GoalWords is the daily word target shown in the editor.
const GoalWords = 50

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// GoalReached reports whether text has at least GoalWords words.
func GoalReached(text string) bool {
	return WordCount(text) >= GoalWords
}

// GoalProgress is the fraction of GoalWords written, capped at 1.
func GoalProgress(text string) float64 {
	p := float64(WordCount(text)) / GoalWords
	if p > 1 {
		return 1
	}
	return p
}
