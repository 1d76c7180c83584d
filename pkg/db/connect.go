package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// busyTimeoutMillis is how long a writer waits for a locked diary database.
const busyTimeoutMillis = 5000

// ValidateSyncMode normalizes a synchronous pragma value to upper case and
// rejects anything SQLite does not accept. An empty value is allowed and means
// "leave the SQLite default".
func ValidateSyncMode(syncPragma string) (string, error) {
	if syncPragma == "" {
		return "", nil
	}
	ucSyncPragma := strings.ToUpper(syncPragma)
	if !validSyncModes[ucSyncPragma] {
		return "", fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
	}
	return ucSyncPragma, nil
}

// IsMemoryDSN reports whether the DSN points at a private in-memory database.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

// OpenDBConnection opens the SQLite database that holds the diary store.
// baseDSN is the file path (or ":memory:").
// enableWAL sets the journal_mode to WAL if true; it is ignored for in-memory databases.
// syncPragma sets the synchronous pragma (e.g., "OFF", "NORMAL", "FULL", "EXTRA").
func OpenDBConnection(baseDSN string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_busy_timeout", strconv.Itoa(busyTimeoutMillis))

	memory := IsMemoryDSN(baseDSN)
	if enableWAL && !memory {
		params.Add("_journal_mode", "WAL")
	}

	syncMode, err := ValidateSyncMode(syncPragma)
	if err != nil {
		return nil, err
	}
	if syncMode != "" {
		params.Add("_synchronous", syncMode)
	}

	constructedDSN := baseDSN
	if strings.Contains(baseDSN, "?") {
		constructedDSN += "&" + params.Encode()
	} else {
		constructedDSN += "?" + params.Encode()
	}

	db, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	if memory {
		// Each pooled connection to :memory: would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	return db, nil
}
