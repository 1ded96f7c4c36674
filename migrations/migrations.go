// Package migrations embeds the SQL schema so the service, the migrate CLI
// and the integration suite apply the same files.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
