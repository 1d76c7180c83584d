package tui

import (
	"context"
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/diary/pkg/diaries"
)

type collectionMsg struct {
	entries diaries.Collection
}

type savedMsg struct {
	entry diaries.Entry
}

// saveFailedMsg carries a rejected save; the editor stays open and shows why.
type saveFailedMsg struct {
	err error
}

// Load the whole diary collection and return tea data
func loadCollection(store *diaries.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.GetAll(context.Background())
		if err != nil {
			return err
		}
		return collectionMsg{entries: entries}
	}
}

// Save one day's diary; validation failures come back as saveFailedMsg
func saveEntry(store *diaries.Store, entry diaries.Entry) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.Upsert(context.Background(), entry)
		if err != nil {
			if diaries.IsValidation(err) {
				return saveFailedMsg{err: err}
			}
			return err
		}
		return savedMsg{entry: saved}
	}
}

// Get database name and file path
func getDbPragmaList(db *sql.DB) (string, string) {
	var name, file string
	if db == nil {
		return name, file
	}
	err := db.QueryRow(`PRAGMA database_list`).Scan(new(int), &name, &file)
	if err != nil {
		return name, file
	}
	return name, file
}
