package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diary "github.com/unowned-ai/diary/pkg"
	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/diaries"
)

// runDiary executes one CLI invocation against dbPath and returns stdout.
func runDiary(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"DIARY_DB", "DIARY_WAL", "DIARY_SYNC", "DIARY_DATE_LAYOUT", "DIARY_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	fixed := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.Local)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	return filepath.Join(t.TempDir(), "diary.db")
}

func TestVersion(t *testing.T) {
	dbPath := setupCLI(t)
	out, err := runDiary(t, dbPath, "", "version")
	require.NoError(t, err)
	assert.Equal(t, diary.Version+"\n", out)
}

func TestWriteAndShow(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runDiary(t, dbPath, "", "write", "--text", "Quiet morning with coffee", "--emotion", "relaxed")
	require.NoError(t, err)
	assert.Contains(t, out, "Diary saved for 3/7/2025 (Relaxed")

	out, err = runDiary(t, dbPath, "", "show", "--json")
	require.NoError(t, err)
	var got diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, diaries.Entry{Date: "3/7/2025", Text: "Quiet morning with coffee", Emotion: diaries.Relaxed}, got)

	out, err = runDiary(t, dbPath, "", "show", "2025-03-07")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal: 50 (4 words written)")
}

func TestWriteFromStdin(t *testing.T) {
	dbPath := setupCLI(t)

	_, err := runDiary(t, dbPath, "  typed into a pipe \n", "write", "--date", "yesterday")
	require.NoError(t, err)

	out, err := runDiary(t, dbPath, "", "show", "yesterday", "--json")
	require.NoError(t, err)
	var got diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, diaries.Entry{Date: "3/6/2025", Text: "typed into a pipe", Emotion: diaries.Happy}, got)
}

func TestWriteRejections(t *testing.T) {
	dbPath := setupCLI(t)

	_, err := runDiary(t, dbPath, "", "write", "--text", "今日は晴れ")
	assert.EqualError(t, err, "English only! Cannot save diary containing Japanese.")

	_, err = runDiary(t, dbPath, "", "write", "--text", "   ")
	assert.EqualError(t, err, "Please write your diary in English.")

	_, err = runDiary(t, dbPath, "", "write", "--text", "fine", "--emotion", "meh")
	assert.ErrorContains(t, err, "Pick an emotion")

	out, err := runDiary(t, dbPath, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "No diaries yet.\n", out)
}

func TestShowDefaultAndStrict(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runDiary(t, dbPath, "", "show", "--json")
	require.NoError(t, err)
	var got diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, diaries.Entry{Date: "3/7/2025", Emotion: diaries.Happy}, got)

	_, err = runDiary(t, dbPath, "", "show", "--strict")
	assert.EqualError(t, err, "no diary saved for 3/7/2025")
}

func TestWordsAndFind(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := runDiary(t, dbPath, "", "write", "--date", "2025-03-01", "--text", "the cat sat")
	require.NoError(t, err)
	_, err = runDiary(t, dbPath, "", "write", "--date", "2025-03-02", "--text", "the dog sat to concatenate", "--emotion", "tired")
	require.NoError(t, err)

	out, err := runDiary(t, dbPath, "", "words", "--letter", "s", "--json")
	require.NoError(t, err)
	var bucket analysis.Bucket
	require.NoError(t, json.Unmarshal([]byte(out), &bucket))
	assert.Equal(t, []analysis.WordEntry{{Word: "sat", Count: 2, Dates: []string{"3/1/2025", "3/2/2025"}}}, bucket.Words)

	out, err = runDiary(t, dbPath, "", "words")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "C D S T\n"), out)
	assert.Contains(t, out, "- concatenate: 1 times")

	out, err = runDiary(t, dbPath, "", "find", "cat", "--json")
	require.NoError(t, err)
	var matches diaries.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "3/2/2025", matches[1].Date)

	out, err = runDiary(t, dbPath, "", "find", "zebra")
	require.NoError(t, err)
	assert.Contains(t, out, `No diaries mention "zebra".`)
}

func TestExportImport(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := runDiary(t, dbPath, "", "write", "--text", "exported day", "--emotion", "excited")
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")
	_, err = runDiary(t, dbPath, "", "export", "--out", exportPath)
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.db")
	out, err := runDiary(t, other, "", "import", exportPath)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 diaries.\n", out)

	out, err = runDiary(t, other, "", "export")
	require.NoError(t, err)
	var got diaries.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, diaries.Collection{{Date: "3/7/2025", Text: "exported day", Emotion: diaries.Excited}}, got)
}

func TestCalendarAndDBInfo(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := runDiary(t, dbPath, "", "write", "--text", "colored square")
	require.NoError(t, err)

	out, err := runDiary(t, dbPath, "", "calendar")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2025 / 3\n"), out)
	assert.Contains(t, out, "1 days written.")

	out, err = runDiary(t, dbPath, "", "calendar", "--month", "2025-04")
	require.NoError(t, err)
	assert.Contains(t, out, "0 days written.")

	out, err = runDiary(t, dbPath, "", "db", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version: 1")
	assert.Contains(t, out, "Entries:        1")
	assert.NotContains(t, out, "Revision:       -")
}

func TestDateLayoutFlag(t *testing.T) {
	dbPath := setupCLI(t)
	_, err := runDiary(t, dbPath, "", "--date-layout", "2006-01-02", "write", "--text", "iso keyed")
	require.NoError(t, err)

	out, err := runDiary(t, dbPath, "", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "2025-03-07"`)
}
