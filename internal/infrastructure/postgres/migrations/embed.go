// Package migrations holds the schema migrations, embedded for golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
