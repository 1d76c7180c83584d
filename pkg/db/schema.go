package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// The kv table stands in for browser local storage: the diary collection
	// lives under a single key as one JSON document.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS diary_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    revision UUID NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)
