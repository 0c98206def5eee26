// Package migrations exposes the embedded gateway schema to hosts that
// manage their own migration runner.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	gateway "github.com/goliatone/go-gateway"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const sourceLabel = "go-gateway"

type FilesystemSpec struct {
	Dialect string
	Path    string
	FS      fs.FS
}

type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

// Filesystems resolves the per-dialect migration trees. The postgres tree
// is the baseline; sqlite overrides live in the sqlite subdirectory.
func Filesystems(sources ...fs.FS) ([]FilesystemSpec, error) {
	root := gateway.GetMigrationsFS()
	if len(sources) > 0 && sources[0] != nil {
		root = sources[0]
	}

	base, err := fs.Sub(root, "data/sql/migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations: data/sql/migrations not found: %w", err)
	}
	sqliteFS, err := fs.Sub(base, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve sqlite filesystem: %w", err)
	}

	filesystems := []FilesystemSpec{
		{Dialect: DialectPostgres, Path: "data/sql/migrations", FS: base},
		{Dialect: DialectSQLite, Path: "data/sql/migrations/sqlite", FS: sqliteFS},
	}
	for _, fsys := range filesystems {
		matches, globErr := fs.Glob(fsys.FS, "*.up.sql")
		if globErr != nil {
			return nil, fmt.Errorf("migrations: glob %s %s: %w", fsys.Dialect, fsys.Path, globErr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("migrations: %s filesystem %q has no *.up.sql files", fsys.Dialect, fsys.Path)
		}
	}
	return filesystems, nil
}

// Register feeds each requested dialect's filesystem to the host's
// migration runner. With no dialects given, every known dialect registers.
func Register(ctx context.Context, registerFn RegisterFunc, dialects ...string) error {
	if registerFn == nil {
		return fmt.Errorf("migrations: register function is required")
	}

	targets := make([]string, 0, len(dialects))
	for _, dialect := range dialects {
		trimmed := strings.TrimSpace(strings.ToLower(dialect))
		if trimmed != "" && !slices.Contains(targets, trimmed) {
			targets = append(targets, trimmed)
		}
	}
	if len(targets) == 0 {
		targets = []string{DialectPostgres, DialectSQLite}
	}

	filesystems, err := Filesystems()
	if err != nil {
		return err
	}
	for _, fsys := range filesystems {
		if !slices.Contains(targets, fsys.Dialect) {
			continue
		}
		if err := registerFn(ctx, fsys.Dialect, sourceLabel, fsys.FS); err != nil {
			return fmt.Errorf("migrations: register %s (%s): %w", fsys.Dialect, fsys.Path, err)
		}
	}
	return nil
}
