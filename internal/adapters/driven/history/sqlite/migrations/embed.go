// Package migrations embeds the SQL migration files for the history store.
package migrations

import "embed"

// FS contains all migration files.
//
//go:embed *.sql
var FS embed.FS
