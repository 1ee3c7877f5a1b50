package translate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// countingEngine is a scripted Engine recording calls.
type countingEngine struct {
	result string
	err    error
	calls  int
}

func (e *countingEngine) Translate(ctx context.Context, req Request) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return e.result, nil
}

func (e *countingEngine) Name() string { return "fake" }

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_PutGet(t *testing.T) {
	cache := openTestCache(t)
	req := Request{Text: "hello", SourceLang: "en", TargetLang: "ja"}

	if _, ok, err := cache.Get(req, "model-a"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok=%v, err=%v", ok, err)
	}

	if err := cache.Put(req, "model-a", "こんにちは"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get(req, "model-a")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v, err=%v", ok, err)
	}
	if got != "こんにちは" {
		t.Errorf("Get = %q, want stored translation", got)
	}

	// Different model key misses
	if _, ok, _ := cache.Get(req, "model-b"); ok {
		t.Error("Get with different model should miss")
	}

	// Different language pair misses
	other := Request{Text: "hello", SourceLang: "en", TargetLang: "de"}
	if _, ok, _ := cache.Get(other, "model-a"); ok {
		t.Error("Get with different target language should miss")
	}
}

func TestCache_PutReplaces(t *testing.T) {
	cache := openTestCache(t)
	req := Request{Text: "hello", SourceLang: "en", TargetLang: "ja"}

	if err := cache.Put(req, "m", "first"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(req, "m", "second"); err != nil {
		t.Fatal(err)
	}

	got, _, _ := cache.Get(req, "m")
	if got != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}
}

func TestCachedEngine(t *testing.T) {
	cache := openTestCache(t)
	inner := &countingEngine{result: "こんにちは"}
	engine := NewCachedEngine(inner, cache, "model-a")
	req := Request{Text: "hello", SourceLang: "en", TargetLang: "ja"}

	// First call goes to the inner engine.
	got, err := engine.Translate(context.Background(), req)
	if err != nil || got != "こんにちは" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	// Second identical call is served from the cache.
	got, err = engine.Translate(context.Background(), req)
	if err != nil || got != "こんにちは" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (cache hit)", inner.calls)
	}
	if engine.Hits() != 1 {
		t.Errorf("Hits = %d, want 1", engine.Hits())
	}
}

func TestCachedEngine_ErrorsNotCached(t *testing.T) {
	cache := openTestCache(t)
	inner := &countingEngine{err: errors.New("boom")}
	engine := NewCachedEngine(inner, cache, "model-a")
	req := Request{Text: "hello", SourceLang: "en", TargetLang: "ja"}

	if _, err := engine.Translate(context.Background(), req); err == nil {
		t.Fatal("Expected error from inner engine")
	}

	// Once the engine recovers the next call still reaches it.
	inner.err = nil
	inner.result = "done"
	got, err := engine.Translate(context.Background(), req)
	if err != nil || got != "done" {
		t.Fatalf("Translate after recovery = %q, %v", got, err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachedEngine_EmptyInputBypassesCache(t *testing.T) {
	cache := openTestCache(t)
	inner := &countingEngine{result: "unused"}
	engine := NewCachedEngine(inner, cache, "m")

	got, err := engine.Translate(context.Background(), Request{Text: "", SourceLang: "en", TargetLang: "ja"})
	if err != nil || got != "" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if inner.calls != 0 {
		t.Errorf("inner calls = %d, want 0", inner.calls)
	}
}
