package main

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	pkgdb "github.com/unowned-ai/diary/pkg/db"
	"github.com/unowned-ai/diary/pkg/diaries"
	"github.com/unowned-ai/diary/pkg/kv"
	"github.com/unowned-ai/diary/pkg/utils"
)

// session is an open diary database with its store.
type session struct {
	path    string
	db      *sql.DB
	backend *kv.SQLite
	store   *diaries.Store
}

func (s *session) Close() error {
	return s.db.Close()
}

// openDB resolves the configured database path and opens it without touching the schema.
func (a *app) openDB() (*sql.DB, string, error) {
	dbPath, err := utils.ResolveAndEnsureDBPath(a.cfg.DBPath)
	if err != nil {
		return nil, "", err
	}
	dbConn, err := pkgdb.OpenDBConnection(dbPath, a.cfg.WAL, a.cfg.SyncMode)
	if err != nil {
		return nil, "", err
	}
	return dbConn, dbPath, nil
}

// openSession opens the database, initializes or checks its schema, and
// builds the diary store on top of it.
func (a *app) openSession(strict bool) (*session, error) {
	dbConn, dbPath, err := a.openDB()
	if err != nil {
		return nil, err
	}
	if err := pkgdb.UpgradeDB(dbConn, dbPath, pkgdb.TargetSchemaVersion, a.logger); err != nil {
		dbConn.Close()
		return nil, err
	}

	a.logger.Debug("diary database opened",
		zap.String("db", dbPath),
		zap.Bool("wal", a.cfg.WAL),
		zap.String("sync", a.cfg.SyncMode))

	backend := kv.NewSQLite(dbConn)
	return &session{
		path:    dbPath,
		db:      dbConn,
		backend: backend,
		store: diaries.NewStore(backend,
			diaries.WithLogger(a.logger),
			diaries.WithStrictDecode(strict)),
	}, nil
}

// formatTimestamp renders a storage time in RFC3339.
func formatTimestamp(t time.Time) string {
	return t.Local().Format(time.RFC3339)
}
