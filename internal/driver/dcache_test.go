package driver

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/visit"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest(sha256.Sum256([]byte("k")))

	if _, err := cache.Get(key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("empty cache: got %v, want ErrCacheMiss", err)
	}

	const file source.FileID = 3
	sp := source.Span{File: file, Start: 4, End: 9}
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynMissingSemicolonAfterField, sp, "missing").
		WithNote(sp, "here").
		WithFix("insert", diag.FixEdit{Span: sp.AtEnd(), NewText: ";"}))
	events := []visit.Event{
		{Kind: visit.EvVariableDeclaration, Name: "I", HasName: true, Span: sp, VarKind: visit.VarInterface},
		{Kind: visit.EvPropertyDeclaration},
	}

	if err := cache.Put(key, resultToDiskPayload(bag, events)); err != nil {
		t.Fatal(err)
	}
	payload, err := cache.Get(key)
	if err != nil {
		t.Fatal(err)
	}

	// Entries are file-agnostic: restore them into another file.
	const other source.FileID = 7
	gotBag, gotEvents := diskPayloadToResult(payload, other, 0)
	d := gotBag.Items()[0]
	if d.Code != diag.SynMissingSemicolonAfterField || d.Primary.File != other || d.Primary.Start != 4 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Notes[0].Span.File != other || d.Fixes[0].Edits[0].NewText != ";" {
		t.Errorf("notes or fixes not restored: %+v", d)
	}
	if len(gotEvents) != 2 || gotEvents[0].String() != "decl(I:interface)" || gotEvents[1].String() != "prop(?)" {
		t.Errorf("unexpected events %v", gotEvents)
	}
	if gotEvents[0].Span.File != other {
		t.Errorf("event span file = %d, want %d", gotEvents[0].Span.File, other)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest(sha256.Sum256([]byte("k")))
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = cache.Get(key)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := Digest(sha256.Sum256([]byte("k")))
	if err := cache.Put(key, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("after DropAll: got %v, want ErrCacheMiss", err)
	}
	if err := cache.Put(key, &DiskPayload{}); err != nil {
		t.Errorf("cache must stay usable after DropAll: %v", err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &DiskPayload{}); err != nil {
		t.Error(err)
	}
	if _, err := cache.Get(Digest{}); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("got %v, want ErrCacheMiss", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Error(err)
	}
}
