// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and at store bootstrap.
// Each SQL dialect has its own directory.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// For returns the migration directory for a goose dialect directory name
// ("postgres" or "sqlite"), rooted so goose sees the files directly.
func For(dialect string) (fs.FS, error) {
	sub, err := fs.Sub(FS, dialect)
	if err != nil {
		return nil, fmt.Errorf("migrations.For %q: %w", dialect, err)
	}
	return sub, nil
}
