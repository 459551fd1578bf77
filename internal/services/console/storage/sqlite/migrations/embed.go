package migrations

import "embed"

// FS contains embedded SQLite migrations for console sessions.
//
//go:embed *.sql
var FS embed.FS
