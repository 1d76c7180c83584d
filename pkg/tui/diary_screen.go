package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/diaries"
)

func (m model) updateDiary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.saveError = ""
		return m.backToCalendar()

	case "tab":
		m.emotionIdx = (m.emotionIdx + 1) % len(diaries.Emotions())
		return m, nil

	case "shift+tab":
		n := len(diaries.Emotions())
		m.emotionIdx = (m.emotionIdx + n - 1) % n
		return m, nil

	case "ctrl+s":
		entry := diaries.Entry{Date: m.date, Text: m.editor.Value(), Emotion: m.emotion()}
		return m, saveEntry(m.store, entry)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) diaryView() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Diary for " + m.date))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(diaries.Emotions()))
	for i, e := range diaries.Emotions() {
		if i == m.emotionIdx {
			labels = append(labels, emotionStyle(e).Bold(true).Render(" "+e.String()+" "))
		} else {
			labels = append(labels, inactiveStyle.Render(" "+e.String()+" "))
		}
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n\n")

	b.WriteString(m.editor.View())
	b.WriteString("\n\n")

	text := m.editor.Value()
	meter := fmt.Sprintf("Goal: %d (%d words written)", analysis.GoalWords, analysis.WordCount(text))
	if analysis.GoalReached(text) {
		b.WriteString(goalStyle.Render(meter))
	} else {
		b.WriteString(dimStyle.Render(meter))
	}

	if diaries.ContainsRestrictedScript(text) {
		b.WriteString("\n" + textRedStyle.Render("Please write in English. Japanese text cannot be saved."))
	}
	if m.saveError != "" {
		b.WriteString("\n" + textRedStyle.Render(m.saveError))
	}
	return b.String()
}
