package translate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS translations (
	source_text TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	model       TEXT NOT NULL,
	translated  TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	PRIMARY KEY (source_text, source_lang, target_lang, model)
);`

// Cache persists finished translations in a sqlite database so that
// repeated cells and re-runs do not invoke the remote endpoint again.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the cached translation for req under model, if any.
func (c *Cache) Get(req Request, model string) (string, bool, error) {
	var translated string
	err := c.db.QueryRow(
		`SELECT translated FROM translations WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND model = ?`,
		req.Text, req.SourceLang, req.TargetLang, model,
	).Scan(&translated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup failed: %w", err)
	}
	return translated, true, nil
}

// Put stores a finished translation, replacing any previous entry.
func (c *Cache) Put(req Request, model, translated string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO translations (source_text, source_lang, target_lang, model, translated, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		req.Text, req.SourceLang, req.TargetLang, model, translated, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// CachedEngine wraps an Engine with the persistent cache. Cache errors
// are non-fatal: a failed lookup falls through to the remote call.
type CachedEngine struct {
	inner Engine
	cache *Cache
	model string
	hits  int
}

// NewCachedEngine wraps engine with the cache under the given model
// key.
func NewCachedEngine(engine Engine, cache *Cache, model string) *CachedEngine {
	return &CachedEngine{inner: engine, cache: cache, model: model}
}

// Translate serves the request from the cache when possible and stores
// fresh results.
func (e *CachedEngine) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	if translated, ok, err := e.cache.Get(req, e.model); err == nil && ok {
		e.hits++
		return translated, nil
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	translated, err := e.inner.Translate(ctx, req)
	if err != nil {
		return "", err
	}

	if err := e.cache.Put(req, e.model, translated); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return translated, nil
}

// Name returns the wrapped backend name.
func (e *CachedEngine) Name() string {
	return e.inner.Name()
}

// Hits returns the number of requests served from the cache.
func (e *CachedEngine) Hits() int {
	return e.hits
}
