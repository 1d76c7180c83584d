package tui

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
)

type screen int

const (
	screenCalendar screen = iota
	screenDiary
	screenAnalysis
)

type model struct {
	store      *diaries.Store
	layout     string
	logger     *zap.Logger
	now        func() time.Time
	dbFilename string

	screen   screen
	width    int // Current terminal width (for layout)
	height   int // Current terminal height
	err      error
	quitting bool
	flash    string // One-shot notice shown on the calendar, e.g. after a save

	entries diaries.Collection
	index   analysis.Index

	// Calendar
	month    calendar.Month
	selected time.Time

	// Diary editor
	date       string
	editor     textarea.Model
	emotionIdx int
	saveError  string

	// Analysis
	letterIdx   int
	wordIdx     int
	matches     diaries.Collection
	matchIdx    int
	showMatches bool
}

// Initialize TUI model
func initModel(store *diaries.Store, dbFilename, layout string, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if layout == "" {
		layout = calendar.DefaultKeyLayout
	}

	editor := textarea.New()
	editor.Placeholder = "Write about your day in English..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	m := model{
		store:      store,
		layout:     layout,
		logger:     logger,
		now:        time.Now,
		dbFilename: dbFilename,
		screen:     screenCalendar,
		entries:    diaries.Collection{},
		editor:     editor,
	}
	m.selectDay(m.today())
	return m
}

func (m model) Init() tea.Cmd {
	return loadCollection(m.store)
}

func (m model) today() time.Time {
	now := m.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (m *model) selectDay(day time.Time) {
	m.selected = day
	m.month = calendar.MonthOf(day)
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(20, msg.Width-8))
		m.editor.SetHeight(max(5, msg.Height-14))
		return m, nil

	case error:
		m.logger.Error("diary tui failure", zap.Error(msg))
		m.err = msg
		return m, nil

	case collectionMsg:
		m.entries = msg.entries
		m.index = analysis.BuildIndex(m.entries)
		m.clampAnalysisCursor()
		return m, nil

	case savedMsg:
		m.logger.Debug("diary saved from tui", zap.String("date", msg.entry.Date))
		m.flash = "Diary saved!"
		m.saveError = ""
		m.editor.Blur()
		m.screen = screenCalendar
		return m, loadCollection(m.store)

	case saveFailedMsg:
		m.saveError = diaries.UserMessage(msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)
		}
		switch m.screen {
		case screenDiary:
			return m.updateDiary(msg)
		case screenAnalysis:
			return m.updateAnalysis(msg)
		default:
			return m.updateCalendar(msg)
		}
	}

	if m.screen == screenDiary {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openDiary switches to the editor for date, prefilled from the loaded collection.
func (m model) openDiary(date string) (tea.Model, tea.Cmd) {
	entry := diaries.Entry{Date: date, Emotion: diaries.DefaultEmotion}
	if i := m.entries.IndexOf(date); i >= 0 {
		entry = m.entries[i]
	}

	m.date = date
	m.editor.SetValue(entry.Text)
	m.emotionIdx = 0
	for i, e := range diaries.Emotions() {
		if e == entry.Emotion {
			m.emotionIdx = i
		}
	}
	m.saveError = ""
	m.flash = ""
	m.showMatches = false
	m.screen = screenDiary
	return m, m.editor.Focus()
}

func (m model) backToCalendar() (tea.Model, tea.Cmd) {
	m.editor.Blur()
	m.showMatches = false
	m.screen = screenCalendar
	return m, loadCollection(m.store)
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing the diary. See you tomorrow.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("Diary - one page a day")

	var body, help string
	switch m.screen {
	case screenDiary:
		body = m.diaryView()
		help = "tab emotion • ctrl+s save • esc back • ctrl+c quit"
	case screenAnalysis:
		body = m.analysisView()
		if m.showMatches {
			help = "↑/↓ choose day • enter open • esc close"
		} else {
			help = "←/→ letter • ↑/↓ word • enter find days • esc back • q quit"
		}
	default:
		body = m.calendarView()
		help = "←/→ day • ↑/↓ week • [/] month • t today • enter write • a analysis • q quit"
	}

	databaseStatus := 0
	if m.dbFilename != "" {
		databaseStatus = 1
	}
	footer := footerStyle.Width(m.width).Render(help) + "\n" +
		"Database file: " + TextStatusColorize(m.dbFilename, databaseStatus)

	return titleBar + "\n\n" + body + "\n\n" + footer
}

func (m model) emotion() diaries.Emotion {
	return diaries.Emotions()[m.emotionIdx]
}

// Create and start the Bubble Tea TUI
func ShowTUI(store *diaries.Store, db *sql.DB, layout string, logger *zap.Logger) error {
	_, file := getDbPragmaList(db)
	p := tea.NewProgram(initModel(store, filepath.Base(file), layout, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
