package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/diary/pkg/calendar"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (m model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

	case "left", "h":
		m.selectDay(m.selected.AddDate(0, 0, -1))
	case "right", "l":
		m.selectDay(m.selected.AddDate(0, 0, 1))
	case "up", "k":
		m.selectDay(m.selected.AddDate(0, 0, -7))
	case "down", "j":
		m.selectDay(m.selected.AddDate(0, 0, 7))

	case "[":
		m.selectDay(sameDayIn(m.month.Prev(), m.selected.Day(), m.selected.Location()))
	case "]":
		m.selectDay(sameDayIn(m.month.Next(), m.selected.Day(), m.selected.Location()))

	case "t":
		m.selectDay(m.today())

	case "enter":
		return m.openDiary(calendar.Key(m.selected, m.layout))

	case "a":
		m.flash = ""
		m.showMatches = false
		m.screen = screenAnalysis
		return m, loadCollection(m.store)
	}
	m.flash = ""
	return m, nil
}

// sameDayIn keeps the selected day number when paging months, clamped to the month length.
func sameDayIn(month calendar.Month, day int, loc *time.Location) time.Time {
	if day > month.Days() {
		day = month.Days()
	}
	return month.Day(day, loc)
}

func (m model) calendarView() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.month.Title()))
	b.WriteString("\n\n")
	for _, wd := range weekdayHeader {
		b.WriteString(fmt.Sprintf(" %s ", wd))
	}
	b.WriteString("\n")

	saved := m.entries.ForMonth(m.month, m.layout)
	today := m.today()
	loc := m.selected.Location()

	for _, week := range m.month.Grid() {
		for _, d := range week {
			if d == 0 {
				b.WriteString("    ")
				continue
			}

			cell := fmt.Sprintf(" %2d ", d)
			day := m.month.Day(d, loc)
			if day.Equal(m.selected) {
				cell = fmt.Sprintf("[%2d]", d)
			}

			style := blankDayStyle
			if e, ok := saved[d]; ok {
				style = emotionStyle(e.Emotion)
			}
			if day.Equal(today) {
				style = style.Inherit(todayStyle)
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	key := calendar.Key(m.selected, m.layout)
	if i := m.entries.IndexOf(key); i >= 0 {
		e := m.entries[i]
		b.WriteString(fmt.Sprintf("%s  %s\n", key, emotionStyle(e.Emotion).Render(" "+e.Emotion.String()+" ")))
		b.WriteString(dimStyle.Render(firstLine(e.Text, 60)))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s", key, dimStyle.Render("no diary yet")))
	}

	if m.flash != "" {
		b.WriteString("\n\n" + goalStyle.Render(m.flash))
	}
	return b.String()
}

// firstLine returns the first line of text cut to limit runes.
func firstLine(text string, limit int) string {
	line, _, _ := strings.Cut(text, "\n")
	r := []rune(line)
	if len(r) > limit {
		return string(r[:limit-2]) + ".."
	}
	return line
}
