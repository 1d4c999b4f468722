// Package migrations embeds the SQL migrations for the auxiliary store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
