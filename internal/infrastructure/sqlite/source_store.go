package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/defreg/internal/cachemanager"
	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/source"
)

const sourceColumns = `id, def_type, prefix, namespace, name, content, hash, created_at, updated_at`

var storeDefTypes = []descriptor.DefType{
	descriptor.Application, descriptor.Component, descriptor.Interface, descriptor.Event,
	descriptor.Controller, descriptor.Helper, descriptor.Renderer, descriptor.Provider,
	descriptor.Style,
}

// Ensure SourceStore implements source.Loader.
var _ source.Loader = (*SourceStore)(nil)

const namespacesKey = "namespaces"

// namespacesTTL bounds how stale the namespace list may get when another
// process writes the same database.
const namespacesTTL = 30 * time.Second

// SourceStore is a source loader backed by the sources table.
type SourceStore struct {
	source.Notifier

	db     *sql.DB
	name   string
	access source.NamespaceAccess

	nsCache    cachemanager.CacheManager[string, []string]
	namespaces *cachemanager.ReadThroughCache[string, []string, struct{}]
}

func newSourceStore(db *sql.DB, name string, access source.NamespaceAccess) *SourceStore {
	s := &SourceStore{db: db, name: name, access: access}
	s.nsCache = cachemanager.NewInMemoryCacheManager[string, []string]("namespaces:"+name, namespacesTTL, cachemanager.DefaultCleanupInterval)
	s.namespaces = cachemanager.NewReadThroughCache(s.nsCache, s.queryNamespaces, nil)
	return s
}

func scanSource(scanner interface{ Scan(...any) error }) (*SourceModel, error) {
	var m SourceModel
	err := scanner.Scan(&m.ID, &m.DefType, &m.Prefix, &m.Namespace, &m.Name, &m.Content, &m.Hash, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (s *SourceStore) Name() string                   { return s.name }
func (s *SourceStore) Access() source.NamespaceAccess { return s.access }
func (s *SourceStore) Prefixes() []string {
	return []string{descriptor.MarkupPrefix, descriptor.JSPrefix, descriptor.CSSPrefix}
}
func (s *SourceStore) DefTypes() []descriptor.DefType { return storeDefTypes }

// Namespaces lists the distinct namespaces stored. The list is cached until
// a write adds or removes a row.
func (s *SourceStore) Namespaces() []string {
	namespaces, _, err := s.namespaces.Get(context.Background(), namespacesKey, struct{}{}, 0)
	if err != nil {
		log.ErrorErr(log.CatDB, "list namespaces", err, "store", s.name)
		return nil
	}
	return namespaces
}

func (s *SourceStore) queryNamespaces(ctx context.Context, _ struct{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT namespace FROM sources ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("failed to query namespaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var namespaces []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		namespaces = append(namespaces, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate namespaces: %w", err)
	}
	return namespaces, nil
}

func (s *SourceStore) forgetNamespaces(ctx context.Context) {
	_ = s.nsCache.Delete(ctx, namespacesKey)
}

func (s *SourceStore) find(ctx context.Context, d descriptor.Descriptor) (*SourceModel, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE def_type = ? AND prefix = ? AND namespace = ? AND name = ?`,
		string(d.DefType), d.Prefix, d.Namespace, d.Name,
	)
	return scanSource(row)
}

// Get returns the stored source or source.ErrNotFound.
func (s *SourceStore) Get(ctx context.Context, d descriptor.Descriptor) (source.Source, error) {
	m, err := s.find(ctx, d)
	if errors.Is(err, sql.ErrNoRows) {
		return source.Source{}, source.ErrNotFound
	}
	if err != nil {
		return source.Source{}, fmt.Errorf("failed to get source %s: %w", d, err)
	}
	return m.toSource(), nil
}

func (s *SourceStore) Exists(ctx context.Context, d descriptor.Descriptor) bool {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sources WHERE def_type = ? AND prefix = ? AND namespace = ? AND name = ?`,
		string(d.DefType), d.Prefix, d.Namespace, d.Name,
	).Scan(&n)
	if err != nil {
		log.ErrorErr(log.CatDB, "exists query failed", err, "descriptor", d)
		return false
	}
	return n > 0
}

// Find matches f against every stored descriptor.
func (s *SourceStore) Find(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT def_type, prefix, namespace, name FROM sources`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []descriptor.Descriptor
	for rows.Next() {
		var m SourceModel
		if err := rows.Scan(&m.DefType, &m.Prefix, &m.Namespace, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		if d := m.descriptor(); f.Matches(d) {
			out = append(out, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sources: %w", err)
	}
	descriptor.Sort(out)
	return out, nil
}

// Put inserts or updates the source of d and notifies listeners.
// It reports whether d is new. Storing identical content is a no-op.
func (s *SourceStore) Put(ctx context.Context, d descriptor.Descriptor, content string) (bool, error) {
	prev, err := s.find(ctx, d)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to read source %s: %w", d, err)
	}
	created := errors.Is(err, sql.ErrNoRows)

	hash := defs.HashContent(content)
	now := time.Now().Unix()
	if created {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO sources (def_type, prefix, namespace, name, content, hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(d.DefType), d.Prefix, d.Namespace, d.Name, content, hash, now, now,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert source %s: %w", d, err)
		}
		s.forgetNamespaces(ctx)
		s.Emit(source.ChangeEvent{Kind: source.Created, Descriptor: d})
		return true, nil
	}

	if prev.Hash == hash {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE sources SET content = ?, hash = ?, updated_at = ? WHERE id = ?`,
		content, hash, now, prev.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update source %s: %w", d, err)
	}
	s.Emit(source.ChangeEvent{Kind: source.Changed, Descriptor: d, Delta: source.Delta(prev.Content, content)})
	return false, nil
}

// Delete removes d and notifies listeners. It reports whether a row was removed.
func (s *SourceStore) Delete(ctx context.Context, d descriptor.Descriptor) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sources WHERE def_type = ? AND prefix = ? AND namespace = ? AND name = ?`,
		string(d.DefType), d.Prefix, d.Namespace, d.Name,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete source %s: %w", d, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		s.forgetNamespaces(ctx)
		s.Emit(source.ChangeEvent{Kind: source.Deleted, Descriptor: d})
	}
	return n > 0, nil
}

// Import copies every source of from into the store and returns how many
// rows were created or changed.
func (s *SourceStore) Import(ctx context.Context, from source.Loader) (int, error) {
	all, err := from.Find(ctx, descriptor.MustParseFilter("*://*:*"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", from.Name(), err)
	}

	written := 0
	for _, d := range all {
		src, err := from.Get(ctx, d)
		if err != nil {
			return written, fmt.Errorf("read %s: %w", d, err)
		}
		before, err := s.find(ctx, d)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return written, fmt.Errorf("failed to read source %s: %w", d, err)
		}
		if err == nil && before.Hash == defs.HashContent(src.Content) {
			continue
		}
		if _, err := s.Put(ctx, d, src.Content); err != nil {
			return written, err
		}
		written++
	}
	log.Info(log.CatDB, "sources imported", "from", from.Name(), "into", s.name, "written", written)
	return written, nil
}
