package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/apidex/apidex"
)

// Compile-time interface verification.
var _ apidex.Catalog = (*Catalog)(nil)

// Catalog implements apidex.Catalog using SQLite. One row per XML file the
// index has seen; a member_count of zero marks a file that parsed cleanly
// but contained no documented members.
type Catalog struct {
	db *DB
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *DB) *Catalog {
	return &Catalog{db: db}
}

// RecordFile upserts the catalog row for one indexed XML file.
func (c *Catalog) RecordFile(ctx context.Context, f *apidex.IndexedFile) error {
	if f.Path == "" {
		return apidex.Errorf(apidex.EINVALID, "file path required")
	}
	if f.IndexedAt.IsZero() {
		f.IndexedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO files (path, content_hash, package_id, package_version, target_framework, member_count, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			package_id = excluded.package_id,
			package_version = excluded.package_version,
			target_framework = excluded.target_framework,
			member_count = excluded.member_count,
			indexed_at = excluded.indexed_at
	`, f.Path, f.ContentHash, f.PackageID, f.PackageVersion, f.TargetFramework,
		f.MemberCount, f.IndexedAt.Format(time.RFC3339))

	return err
}

// FindFile retrieves the catalog row for a path.
func (c *Catalog) FindFile(ctx context.Context, path string) (*apidex.IndexedFile, error) {
	var f apidex.IndexedFile
	var indexedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT path, content_hash, package_id, package_version, target_framework, member_count, indexed_at
		FROM files
		WHERE path = ?
	`, path).Scan(&f.Path, &f.ContentHash, &f.PackageID, &f.PackageVersion,
		&f.TargetFramework, &f.MemberCount, &indexedAt)

	if err == sql.ErrNoRows {
		return nil, apidex.Errorf(apidex.ENOTFOUND, "file not in catalog: %s", path)
	}
	if err != nil {
		return nil, err
	}

	f.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// IndexedPackageVersions returns the package -> versions map currently known
// to the index. Versions preserve insertion order per package.
func (c *Catalog) IndexedPackageVersions(ctx context.Context) (map[string][]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT package_id, package_version
		FROM files
		WHERE package_id != '' AND member_count > 0
		ORDER BY package_id, package_version
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make(map[string][]string)
	for rows.Next() {
		var id, version string
		if err := rows.Scan(&id, &version); err != nil {
			return nil, err
		}
		versions[id] = append(versions[id], version)
	}

	return versions, rows.Err()
}

// IndexedPackageVersionsWithFramework returns the full
// package+version+framework triples known to the index.
func (c *Catalog) IndexedPackageVersionsWithFramework(ctx context.Context) ([]apidex.PackageVersion, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT package_id, package_version, target_framework
		FROM files
		WHERE package_id != '' AND member_count > 0
		ORDER BY package_id, package_version, target_framework
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triples []apidex.PackageVersion
	for rows.Next() {
		var pv apidex.PackageVersion
		if err := rows.Scan(&pv.PackageID, &pv.Version, &pv.Framework); err != nil {
			return nil, err
		}
		triples = append(triples, pv)
	}

	return triples, rows.Err()
}

// IndexedPaths returns every XML path recorded with at least one member.
func (c *Catalog) IndexedPaths(ctx context.Context) (map[string]bool, error) {
	return c.pathsWhere(ctx, "member_count > 0")
}

// EmptyPaths returns every XML path that parsed to zero members.
func (c *Catalog) EmptyPaths(ctx context.Context) (map[string]bool, error) {
	return c.pathsWhere(ctx, "member_count = 0")
}

func (c *Catalog) pathsWhere(ctx context.Context, cond string) (map[string]bool, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT path FROM files WHERE "+cond)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = true
	}

	return paths, rows.Err()
}

// DeleteByPackageIDs removes catalog rows for the given package IDs.
func (c *Catalog) DeleteByPackageIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := c.db.ExecContext(ctx,
		"DELETE FROM files WHERE package_id IN ("+placeholders+")", args...)
	return err
}

// DeleteAll clears the catalog.
func (c *Catalog) DeleteAll(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM files")
	return err
}
