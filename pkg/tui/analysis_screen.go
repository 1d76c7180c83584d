package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/diary/pkg/analysis"
)

func (m model) updateAnalysis(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showMatches {
		switch msg.String() {
		case "up", "k":
			if m.matchIdx > 0 {
				m.matchIdx--
			}
		case "down", "j":
			if m.matchIdx < len(m.matches)-1 {
				m.matchIdx++
			}
		case "enter":
			if len(m.matches) > 0 {
				return m.openDiary(m.matches[m.matchIdx].Date)
			}
		case "esc":
			m.showMatches = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

	case "esc", "c":
		return m.backToCalendar()

	case "left", "h":
		if m.letterIdx > 0 {
			m.letterIdx--
			m.wordIdx = 0
		}
	case "right", "l":
		if m.letterIdx < len(m.index.Buckets)-1 {
			m.letterIdx++
			m.wordIdx = 0
		}
	case "up", "k":
		if m.wordIdx > 0 {
			m.wordIdx--
		}
	case "down", "j":
		if m.wordIdx < len(m.currentWords())-1 {
			m.wordIdx++
		}

	case "enter":
		words := m.currentWords()
		if len(words) == 0 {
			return m, nil
		}
		m.matches = analysis.FindEntriesContaining(words[m.wordIdx].Word, m.entries)
		if len(m.matches) == 1 {
			return m.openDiary(m.matches[0].Date)
		}
		m.matchIdx = 0
		m.showMatches = len(m.matches) > 1
	}
	return m, nil
}

func (m model) currentWords() []analysis.WordEntry {
	if m.letterIdx < 0 || m.letterIdx >= len(m.index.Buckets) {
		return nil
	}
	return m.index.Buckets[m.letterIdx].Words
}

func (m *model) clampAnalysisCursor() {
	if m.letterIdx >= len(m.index.Buckets) {
		m.letterIdx = max(0, len(m.index.Buckets)-1)
	}
	if m.wordIdx >= len(m.currentWords()) {
		m.wordIdx = max(0, len(m.currentWords())-1)
	}
}

func (m model) analysisView() string {
	var lines []string

	lines = append(lines, subtitleStyle.Render(fmt.Sprintf("Dictionary (%d words)", m.index.Total())), "")
	if len(m.index.Buckets) == 0 {
		lines = append(lines, "No words yet. Write a diary first.")
		return joinLines(lines)
	}

	strip := make([]string, 0, len(m.index.Letters))
	for i, letter := range m.index.Letters {
		if i == m.letterIdx {
			strip = append(strip, selectedStyle.Render(" "+letter+" "))
		} else {
			strip = append(strip, letterStyle.Render(" "+letter+" "))
		}
	}
	lines = append(lines, strings.Join(strip, ""), "")

	bucket := m.index.Buckets[m.letterIdx]
	lines = append(lines, letterStyle.Render(bucket.Letter))

	rows := m.height - 14
	if m.showMatches {
		rows -= len(m.matches) + 3
	}
	start, end := visibleWindow(len(bucket.Words), m.wordIdx, rows)
	for i := start; i < end; i++ {
		w := bucket.Words[i]
		line := fmt.Sprintf("- %s: %d times", w.Word, w.Count)
		pointer := generateLinePointer(i == m.wordIdx && !m.showMatches, 2)
		if i == m.wordIdx {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, pointer+line)
	}

	if m.showMatches {
		word := bucket.Words[m.wordIdx].Word
		lines = append(lines, "", subtitleStyle.Render(fmt.Sprintf("Days mentioning %q", word)))
		for i, e := range m.matches {
			label := emotionStyle(e.Emotion).Render(fmt.Sprintf(" %s (%s) ", e.Date, e.Emotion))
			lines = append(lines, generateLinePointer(i == m.matchIdx, 2)+label)
		}
	}
	return joinLines(lines)
}
