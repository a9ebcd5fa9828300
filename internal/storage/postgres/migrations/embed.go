// Package migrations holds the embedded schema migrations for the postgres
// engine, applied with goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
