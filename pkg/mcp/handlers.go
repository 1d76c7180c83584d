package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
)

// RegisterTools adds every diary tool to the server.
func (s *DiaryMCPServer) RegisterTools() {
	s.mcpServer.AddTool(mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Diary MCP server is alive."),
	), s.handlePing)

	s.mcpServer.AddTool(mcp.NewTool("save_diary",
		mcp.WithDescription("Saves the diary for one day, replacing whatever was saved for that day. Text must be English."),
		mcp.WithString("date", mcp.Description("Day to save: today, yesterday, YYYY-MM-DD or a stored date key. Defaults to today.")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Diary text.")),
		mcp.WithString("emotion", mcp.Enum(emotionNames()...), mcp.DefaultString(string(diaries.DefaultEmotion)), mcp.Description("Emotion tag for the day.")),
	), s.handleSaveDiary)

	s.mcpServer.AddTool(mcp.NewTool("get_diary",
		mcp.WithDescription("Returns the diary for one day. Days without a diary return an empty Happy entry unless strict is set."),
		mcp.WithString("date", mcp.Description("Day to read: today, yesterday, YYYY-MM-DD or a stored date key. Defaults to today.")),
		mcp.WithBoolean("strict", mcp.Description("Report a missing diary as an error instead of an empty entry.")),
	), s.handleGetDiary)

	s.mcpServer.AddTool(mcp.NewTool("list_diaries",
		mcp.WithDescription("Lists every saved diary in the order they were first written."),
	), s.handleListDiaries)

	s.mcpServer.AddTool(mcp.NewTool("list_emotions",
		mcp.WithDescription("Lists the emotion tags with their calendar colors."),
	), s.handleListEmotions)

	s.mcpServer.AddTool(mcp.NewTool("word_dictionary",
		mcp.WithDescription("Returns every word of three or more letters used in the diaries, with its count and the days it appears on, grouped by first letter."),
		mcp.WithString("letter", mcp.Description("Only return the words starting with this letter.")),
		mcp.WithBoolean("stopwords", mcp.Description("Drop common English words such as 'the' and 'and'.")),
	), s.handleWordDictionary)

	s.mcpServer.AddTool(mcp.NewTool("find_entries_with_word",
		mcp.WithDescription("Finds the diaries whose text contains the word, ignoring case. Parts of longer words match too."),
		mcp.WithString("word", mcp.Required(), mcp.Description("Word to search for.")),
	), s.handleFindEntriesWithWord)

	s.mcpServer.AddTool(mcp.NewTool("month_overview",
		mcp.WithDescription("Returns the days of a month that have a diary, with their emotion and word count."),
		mcp.WithString("month", mcp.Description("Month as YYYY-MM. Defaults to the current month.")),
	), s.handleMonthOverview)
}

func (s *DiaryMCPServer) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_diary"), nil
}

func (s *DiaryMCPServer) handleSaveDiary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := calendar.ResolveKey(stringArg(request, "date"), s.layout, s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, textOk := request.Params.Arguments["text"].(string)
	if !textOk {
		return mcp.NewToolResultError("'text' parameter is required and must be a string."), nil
	}

	emotion := diaries.DefaultEmotion
	if raw := stringArg(request, "emotion"); raw != "" {
		emotion, err = diaries.ParseEmotion(raw)
		if err != nil {
			return mcp.NewToolResultError(diaries.UserMessage(err)), nil
		}
	}

	saved, err := s.store.Upsert(ctx, diaries.Entry{Date: date, Text: text, Emotion: emotion})
	if err != nil {
		if diaries.IsValidation(err) {
			return mcp.NewToolResultError(diaries.UserMessage(err)), nil
		}
		s.logger.Error("save_diary failed", zap.String("date", date), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save diary for %s: %v", date, err)), nil
	}
	return jsonResult(saved, "diary")
}

func (s *DiaryMCPServer) handleGetDiary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := calendar.ResolveKey(stringArg(request, "date"), s.layout, s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var entry diaries.Entry
	if boolArg(request, "strict") {
		entry, err = s.store.Require(ctx, date)
		if errors.Is(err, diaries.ErrEntryNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("No diary saved for %s.", date)), nil
		}
	} else {
		entry, err = s.store.GetByDate(ctx, date)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error retrieving diary for %s: %v", date, err)), nil
	}
	return jsonResult(entry, "diary")
}

func (s *DiaryMCPServer) handleListDiaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := s.store.GetAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list diaries: %v", err)), nil
	}
	return jsonResult(c, "diaries")
}

type emotionInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *DiaryMCPServer) handleListEmotions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := make([]emotionInfo, 0, len(diaries.Emotions()))
	for _, e := range diaries.Emotions() {
		list = append(list, emotionInfo{Name: e.String(), Color: e.Color()})
	}
	return jsonResult(list, "emotions")
}

func (s *DiaryMCPServer) handleWordDictionary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := s.store.GetAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read diaries: %v", err)), nil
	}
	idx := analysis.BuildIndex(c, analysis.WithStopwords(boolArg(request, "stopwords")))

	if letter := stringArg(request, "letter"); letter != "" {
		bucket, ok := idx.Bucket(letter)
		if !ok {
			bucket = analysis.Bucket{Letter: letter, Words: []analysis.WordEntry{}}
		}
		return jsonResult(bucket, "word bucket")
	}
	return jsonResult(idx, "word dictionary")
}

func (s *DiaryMCPServer) handleFindEntriesWithWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word := stringArg(request, "word")
	if word == "" {
		return mcp.NewToolResultError("'word' parameter is required and must be a non-empty string."), nil
	}

	c, err := s.store.GetAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read diaries: %v", err)), nil
	}
	return jsonResult(analysis.FindEntriesContaining(word, c), "entries")
}

type dayOverview struct {
	Day     int             `json:"day"`
	Date    string          `json:"date"`
	Emotion diaries.Emotion `json:"emotion"`
	Color   string          `json:"color"`
	Words   int             `json:"words"`
}

type monthOverview struct {
	Month string        `json:"month"`
	Days  []dayOverview `json:"days"`
}

func (s *DiaryMCPServer) handleMonthOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month, err := calendar.ParseMonth(stringArg(request, "month"), s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := s.store.GetAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read diaries: %v", err)), nil
	}

	saved := c.ForMonth(month, s.layout)
	overview := monthOverview{Month: month.String(), Days: []dayOverview{}}
	for d := 1; d <= month.Days(); d++ {
		e, ok := saved[d]
		if !ok {
			continue
		}
		overview.Days = append(overview.Days, dayOverview{
			Day:     d,
			Date:    e.Date,
			Emotion: e.Emotion,
			Color:   e.Emotion.Color(),
			Words:   analysis.WordCount(e.Text),
		})
	}
	return jsonResult(overview, "month overview")
}

func emotionNames() []string {
	names := make([]string, 0, len(diaries.Emotions()))
	for _, e := range diaries.Emotions() {
		names = append(names, e.String())
	}
	return names
}
