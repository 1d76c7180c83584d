package mcp

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	diary "github.com/unowned-ai/diary/pkg"
	"github.com/unowned-ai/diary/pkg/config"
	pkgdb "github.com/unowned-ai/diary/pkg/db"
	"github.com/unowned-ai/diary/pkg/diaries"
	"github.com/unowned-ai/diary/pkg/kv"
	"github.com/unowned-ai/diary/pkg/utils"
)

type DiaryMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	store     *diaries.Store
	layout    string
	logger    *zap.Logger
	now       func() time.Time
	DbPath    string
}

// NewDiaryMCPServer opens the diary database described by cfg, brings its
// schema up to date and wraps an mcp-go server around it. Tools are not
// registered until RegisterTools is called.
func NewDiaryMCPServer(cfg config.Config, logger *zap.Logger) (*DiaryMCPServer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dbPath, err := utils.ResolveAndEnsureDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(dbPath, cfg.WAL, cfg.SyncMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, dbPath, pkgdb.TargetSchemaVersion, logger); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", dbPath, err)
	}

	store := diaries.NewStore(kv.NewSQLite(dbConn), diaries.WithLogger(logger))
	s := newDiaryMCPServer(store, cfg.DateLayout, logger)
	s.db = dbConn
	s.DbPath = dbPath
	return s, nil
}

func newDiaryMCPServer(store *diaries.Store, layout string, logger *zap.Logger) *DiaryMCPServer {
	return &DiaryMCPServer{
		mcpServer: server.NewMCPServer(
			"Diary MCP Server",
			diary.Version,
			server.WithToolCapabilities(true),
			server.WithLogging(),
			server.WithRecovery(),
		),
		store:  store,
		layout: layout,
		logger: logger,
		now:    time.Now,
	}
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DiaryMCPServer) Start() error {
	s.logger.Info("starting diary MCP server", zap.String("db", s.DbPath))
	return server.ServeStdio(s.mcpServer)
}

func (s *DiaryMCPServer) Store() *diaries.Store {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DiaryMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close checkpoints the WAL and closes the database.
func (s *DiaryMCPServer) Close() error {
	if s.db == nil {
		return nil
	}
	// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		s.logger.Warn("WAL checkpoint failed during close", zap.Error(err))
	}
	return s.db.Close()
}
