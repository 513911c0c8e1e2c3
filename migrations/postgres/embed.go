// Package migrations embeds the SQL schema for the identity lookup tables.
package migrations

import "embed"

// FS contains the postgres migrations, named {version}_{name}.sql.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory within FS where migrations live.
const Dir = "."
