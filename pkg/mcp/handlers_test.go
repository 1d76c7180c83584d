package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
	"github.com/unowned-ai/diary/pkg/kv"
)

func newTestServer(t *testing.T) *DiaryMCPServer {
	t.Helper()
	store := diaries.NewStore(kv.NewMemory())
	s := newDiaryMCPServer(store, calendar.DefaultKeyLayout, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, time.March, 7, 15, 0, 0, 0, time.Local) }
	s.RegisterTools()
	return s
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handlePing(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "pong_diary", resultText(t, res))
}

func TestSaveAndGetDiary(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	res, err := s.handleSaveDiary(ctx, callRequest(map[string]any{
		"text":    "  met an old friend  ",
		"emotion": "loved",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var saved diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &saved))
	assert.Equal(t, diaries.Entry{Date: "3/7/2025", Text: "met an old friend", Emotion: diaries.Loved}, saved)

	res, err = s.handleGetDiary(ctx, callRequest(map[string]any{"date": "2025-03-07"}))
	require.NoError(t, err)
	var got diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, saved, got)

	res, err = s.handleGetDiary(ctx, callRequest(map[string]any{"date": "3/7/2025"}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, saved, got)
}

func TestSaveDiary_ValidationMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	res, err := s.handleSaveDiary(ctx, callRequest(map[string]any{"text": "すし"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "English only! Cannot save diary containing Japanese.", resultText(t, res))

	res, err = s.handleSaveDiary(ctx, callRequest(map[string]any{"text": "   "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Please write your diary in English.", resultText(t, res))

	res, err = s.handleSaveDiary(ctx, callRequest(map[string]any{"text": "ok", "emotion": "bored"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleSaveDiary(ctx, callRequest(map[string]any{"text": "ok", "date": "someday"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	count, err := s.Store().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestGetDiary_DefaultAndStrict(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	res, err := s.handleGetDiary(ctx, callRequest(map[string]any{"date": "yesterday"}))
	require.NoError(t, err)
	var got diaries.Entry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, diaries.Entry{Date: "3/6/2025", Text: "", Emotion: diaries.Happy}, got)

	res, err = s.handleGetDiary(ctx, callRequest(map[string]any{"date": "yesterday", "strict": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "No diary saved for 3/6/2025.", resultText(t, res))
}

func TestWordDictionaryAndFind(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	for _, e := range []diaries.Entry{
		{Date: "3/1/2025", Text: "the cat sat", Emotion: diaries.Happy},
		{Date: "3/2/2025", Text: "the dog sat and we concatenate", Emotion: diaries.Tired},
	} {
		_, err := s.Store().Upsert(ctx, e)
		require.NoError(t, err)
	}

	res, err := s.handleWordDictionary(ctx, callRequest(map[string]any{"letter": "s"}))
	require.NoError(t, err)
	var bucket analysis.Bucket
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &bucket))
	assert.Equal(t, "S", bucket.Letter)
	require.Len(t, bucket.Words, 1)
	assert.Equal(t, analysis.WordEntry{Word: "sat", Count: 2, Dates: []string{"3/1/2025", "3/2/2025"}}, bucket.Words[0])

	res, err = s.handleWordDictionary(ctx, callRequest(map[string]any{"stopwords": true}))
	require.NoError(t, err)
	var idx analysis.Index
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &idx))
	_, found := idx.Lookup("the")
	assert.False(t, found)

	res, err = s.handleFindEntriesWithWord(ctx, callRequest(map[string]any{"word": "CAT"}))
	require.NoError(t, err)
	var matches diaries.Collection
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &matches))
	assert.Len(t, matches, 2)

	res, err = s.handleFindEntriesWithWord(ctx, callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMonthOverview(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	_, err := s.Store().Upsert(ctx, diaries.Entry{Date: "3/5/2025", Text: "one two three", Emotion: diaries.Angry})
	require.NoError(t, err)
	_, err = s.Store().Upsert(ctx, diaries.Entry{Date: "4/5/2025", Text: "next month", Emotion: diaries.Sad})
	require.NoError(t, err)

	res, err := s.handleMonthOverview(ctx, callRequest(nil))
	require.NoError(t, err)

	var overview monthOverview
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &overview))
	assert.Equal(t, "2025-03", overview.Month)
	require.Len(t, overview.Days, 1)
	assert.Equal(t, dayOverview{Day: 5, Date: "3/5/2025", Emotion: diaries.Angry, Color: "#e74c3c", Words: 3}, overview.Days[0])

	res, err = s.handleMonthOverview(ctx, callRequest(map[string]any{"month": "March"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListEmotions(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleListEmotions(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var list []emotionInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &list))
	require.Len(t, list, 8)
	assert.Equal(t, emotionInfo{Name: "Happy", Color: "#2ecc71"}, list[0])
}
