package migrations

import "embed"

// FS contains embedded SQL migrations shared by the Postgres and SQLite stores.
//
//go:embed *.sql
var FS embed.FS
