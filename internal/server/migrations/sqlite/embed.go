// Package sqlite embeds the goose SQL migrations for the SQLite store.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
