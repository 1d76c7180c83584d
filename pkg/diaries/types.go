// Package diaries owns the persisted diary collection: at most one entry per
// calendar date, stored whole as a JSON array under a single key.
package diaries

import (
	"time"

	"github.com/unowned-ai/diary/pkg/calendar"
)

// StorageKey is the key the whole collection is stored under.
const StorageKey = "diaries"

// Entry is one day's diary.
type Entry struct {
	Date    string  `json:"date"`
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion"`
}

// Collection is every saved entry. Order carries no meaning beyond insertion.
type Collection []Entry

// IndexOf returns the position of the first entry for date, or -1.
func (c Collection) IndexOf(date string) int {
	for i, e := range c {
		if e.Date == date {
			return i
		}
	}
	return -1
}

// Upsert replaces the entry with the same date in place or appends it.
func (c Collection) Upsert(entry Entry) Collection {
	if i := c.IndexOf(entry.Date); i >= 0 {
		c[i] = entry
		return c
	}
	return append(c, entry)
}

// ForMonth maps each day number of m that has an entry to that entry.
// Keys are rendered with layout, so it must match the layout entries were saved with.
func (c Collection) ForMonth(m calendar.Month, layout string) map[int]Entry {
	days := make(map[int]Entry)
	for d := 1; d <= m.Days(); d++ {
		key := calendar.Key(m.Day(d, time.Local), layout)
		if i := c.IndexOf(key); i >= 0 {
			days[d] = c[i]
		}
	}
	return days
}
