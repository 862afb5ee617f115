// Package migrations embeds the SQL migration files for tooling and tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
