// Package migrations holds the ordered schema history of the pharmacy
// database. SQL migrations are embedded; data seeds that need application
// code (password hashing) are written in Go.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
