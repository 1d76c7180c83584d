package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
	"github.com/unowned-ai/diary/pkg/kv"
)

var fixedNow = time.Date(2025, time.March, 7, 18, 30, 0, 0, time.Local)

func newTestModel(t *testing.T, seed ...diaries.Entry) model {
	t.Helper()
	store := diaries.NewStore(kv.NewMemory())
	for _, e := range seed {
		_, err := store.Upsert(context.Background(), e)
		require.NoError(t, err)
	}

	m := initModel(store, "test.db", calendar.DefaultKeyLayout, zap.NewNop())
	m.now = func() time.Time { return fixedNow }
	m.selectDay(m.today())
	// A blinking cursor would make Focus return a command that sleeps.
	m.editor.Cursor.SetMode(cursor.CursorStatic)
	return send(t, m, m.Init()())
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

// press sends a key and runs the command it returns once, feeding the result back.
func press(t *testing.T, m model, key tea.KeyMsg) model {
	t.Helper()
	next, cmd := m.Update(key)
	out := next.(model)
	if cmd == nil {
		return out
	}
	switch msg := cmd().(type) {
	case collectionMsg, savedMsg, saveFailedMsg:
		return press2(t, out, msg)
	default:
		return out
	}
}

func press2(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	out := next.(model)
	if cmd != nil {
		if follow, ok := cmd().(collectionMsg); ok {
			out = send(t, out, follow)
		}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCalendarNavigation(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, calendar.Month{Year: 2025, Month: time.March}, m.month)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 8, m.selected.Day())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.selected.Day())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, calendar.Month{Year: 2025, Month: time.February}, m.month)
	assert.Equal(t, 28, m.selected.Day())

	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))
	assert.Equal(t, calendar.Month{Year: 2025, Month: time.April}, m.month)

	m = press(t, m, runes("t"))
	assert.Equal(t, "3/7/2025", calendar.Key(m.selected, m.layout))
}

func TestMonthPagingClampsDay(t *testing.T) {
	m := newTestModel(t)
	m.selectDay(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local))

	m = press(t, m, runes("["))
	assert.Equal(t, time.February, m.selected.Month())
	assert.Equal(t, 28, m.selected.Day())
}

func TestWriteAndSaveDiary(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenDiary, m.screen)
	assert.Equal(t, "3/7/2025", m.date)
	assert.Equal(t, diaries.Happy, m.emotion())
	assert.Empty(t, m.editor.Value())

	m.editor.SetValue("A long walk by the river")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, diaries.Sad, m.emotion())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, screenCalendar, m.screen)
	assert.Equal(t, "Diary saved!", m.flash)
	require.Len(t, m.entries, 1)

	got, err := m.store.GetByDate(context.Background(), "3/7/2025")
	require.NoError(t, err)
	assert.Equal(t, diaries.Entry{Date: "3/7/2025", Text: "A long walk by the river", Emotion: diaries.Sad}, got)
	assert.Contains(t, m.View(), "Diary saved!")
}

func TestSaveRejectedStaysInEditor(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.editor.SetValue("ラーメン")
	assert.Contains(t, m.diaryView(), "Japanese text cannot be saved")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, screenDiary, m.screen)
	assert.Equal(t, "English only! Cannot save diary containing Japanese.", m.saveError)

	m.editor.SetValue("   ")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Please write your diary in English.", m.saveError)

	count, err := m.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpenExistingDiary(t *testing.T) {
	m := newTestModel(t, diaries.Entry{Date: "3/7/2025", Text: "already here", Emotion: diaries.Confused})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "already here", m.editor.Value())
	assert.Equal(t, diaries.Confused, m.emotion())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenCalendar, m.screen)
}

func TestAnalysisSingleMatchOpensDay(t *testing.T) {
	m := newTestModel(t,
		diaries.Entry{Date: "3/1/2025", Text: "apple pie", Emotion: diaries.Happy},
		diaries.Entry{Date: "3/2/2025", Text: "banana bread", Emotion: diaries.Tired},
	)

	m = press(t, m, runes("a"))
	require.Equal(t, screenAnalysis, m.screen)
	assert.Equal(t, []string{"A", "B", "P"}, m.index.Letters)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "banana", m.currentWords()[m.wordIdx].Word)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenDiary, m.screen)
	assert.Equal(t, "3/2/2025", m.date)
	assert.Equal(t, "banana bread", m.editor.Value())
}

func TestAnalysisMultipleMatchesListsDays(t *testing.T) {
	m := newTestModel(t,
		diaries.Entry{Date: "3/1/2025", Text: "rain again", Emotion: diaries.Sad},
		diaries.Entry{Date: "3/2/2025", Text: "more rain", Emotion: diaries.Tired},
	)

	m = press(t, m, runes("a"))
	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	require.Equal(t, "rain", m.currentWords()[m.wordIdx].Word)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showMatches)
	assert.Len(t, m.matches, 2)
	assert.Contains(t, m.View(), "3/2/2025 (Tired)")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenDiary, m.screen)
	assert.Equal(t, "3/2/2025", m.date)
}

func TestCalendarViewMarksSavedDays(t *testing.T) {
	m := newTestModel(t, diaries.Entry{Date: "3/7/2025", Text: "first line\nsecond", Emotion: diaries.Excited})
	view := m.View()
	assert.Contains(t, view, "2025 / 3")
	assert.Contains(t, view, "[ 7]")
	assert.Contains(t, view, "Excited")
	assert.Contains(t, view, "first line")
	assert.NotContains(t, view, "second")
}

func TestVisibleWindow(t *testing.T) {
	start, end := visibleWindow(3, 1, 10)
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	start, end = visibleWindow(100, 50, 10)
	assert.Equal(t, [2]int{45, 55}, [2]int{start, end})

	start, end = visibleWindow(100, 99, 10)
	assert.Equal(t, [2]int{90, 100}, [2]int{start, end})
}
