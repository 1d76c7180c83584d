package diaries

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrEmptyText        = errors.New("diary text is empty")
	ErrRestrictedScript = errors.New("diary text contains Japanese or CJK characters")
	ErrUnknownEmotion   = errors.New("unknown emotion")
	ErrMissingDate      = errors.New("diary date is required")
	ErrCorruptState     = errors.New("stored diary collection is corrupt")
)

// UserMessage turns a rejected save into the prompt shown to the writer.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrRestrictedScript):
		return "English only! Cannot save diary containing Japanese."
	case errors.Is(err, ErrEmptyText):
		return "Please write your diary in English."
	case errors.Is(err, ErrUnknownEmotion):
		return fmt.Sprintf("Pick an emotion: %s.", emotionNames())
	case errors.Is(err, ErrMissingDate):
		return "Pick a day first."
	default:
		return err.Error()
	}
}

// IsValidation reports whether err is a rejected save rather than a storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrRestrictedScript) ||
		errors.Is(err, ErrUnknownEmotion) ||
		errors.Is(err, ErrMissingDate)
}
