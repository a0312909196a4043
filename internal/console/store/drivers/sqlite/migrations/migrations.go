// Package migrations embeds the sqlite schema migrations so they compile
// into the console binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
