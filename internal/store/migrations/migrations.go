// Package migrations embeds the goose SQL migrations that define the
// object-store schema. A schema change means a new numbered file here;
// goose tracks the applied version inside the database itself.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
