// Package migrations embeds the schema for each supported driver.
package migrations

import "embed"

// Postgres holds the Postgres schema files.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the SQLite schema files.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
