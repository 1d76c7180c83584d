package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unowned-ai/diary/pkg/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Diary MCP server (stdio)",
		Long: `Start a Model Context Protocol (MCP) server that exposes the diary and its
word dictionary as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\diary\diary.db
- macOS: ~/Library/Application Support/diary/diary.db
- Linux: ~/.local/share/diary/diary.db

Example:
  diary mcp
  diary mcp --db diary.db --wal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := mcp.NewDiaryMCPServer(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			srv.RegisterTools()

			// Logs go to stderr so the JSON-RPC stream on stdout stays clean.
			a.logger.Info("diary MCP server ready",
				zap.String("db", srv.DbPath),
				zap.Bool("wal", a.cfg.WAL),
				zap.String("sync", a.cfg.SyncMode),
				zap.Strings("tools", []string{"ping", "save_diary", "get_diary", "list_diaries", "list_emotions", "word_dictionary", "find_entries_with_word", "month_overview"}))

			return srv.Start()
		},
	}
}
