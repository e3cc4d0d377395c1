package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/visit"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// ErrCacheMiss is returned by Get when no usable entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// DiskCache stores per-file check results keyed by content and options.
// A nil *DiskCache is valid and caches nothing. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the stored form of one file's result. Spans keep only
// byte offsets; the file ID is restored on load.
type DiskPayload struct {
	Schema      uint16
	Diagnostics []CachedDiagnostic
	Events      []CachedEvent
}

type CachedSpan struct {
	Start uint32
	End   uint32
}

type CachedNote struct {
	Span CachedSpan
	Msg  string
}

type CachedEdit struct {
	Span    CachedSpan
	NewText string
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  CachedSpan
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedEvent struct {
	Kind    uint8
	Name    string
	HasName bool
	Span    CachedSpan
	VarKind uint8
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app, or ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root. It is empty for a nil cache.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload under key, replacing any existing entry atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. It returns ErrCacheMiss when the entry does
// not exist or was written by another schema version.
func (c *DiskCache) Get(key Digest) (*DiskPayload, error) {
	if c == nil {
		return nil, ErrCacheMiss
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	defer f.Close()

	var out DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return nil, ErrCacheMiss
	}
	return &out, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func cacheSpan(sp source.Span) CachedSpan {
	return CachedSpan{Start: sp.Start, End: sp.End}
}

func (s CachedSpan) in(file source.FileID) source.Span {
	return source.Span{File: file, Start: s.Start, End: s.End}
}

// resultToDiskPayload converts a parse result into its cached form.
func resultToDiskPayload(bag *diag.Bag, events []visit.Event) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Diagnostics: make([]CachedDiagnostic, 0, bag.Len()),
		Events:      make([]CachedEvent, len(events)),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  cacheSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Span: cacheSpan(n.Span), Msg: n.Msg})
		}
		for _, fx := range d.Fixes {
			cf := CachedFix{Title: fx.Title}
			for _, e := range fx.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Span: cacheSpan(e.Span), NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	for i, e := range events {
		payload.Events[i] = CachedEvent{
			Kind:    uint8(e.Kind),
			Name:    e.Name,
			HasName: e.HasName,
			Span:    cacheSpan(e.Span),
			VarKind: uint8(e.VarKind),
		}
	}
	return payload
}

// diskPayloadToResult rebuilds the bag and events for file.
func diskPayloadToResult(payload *DiskPayload, file source.FileID, bagSize int) (*diag.Bag, []visit.Event) {
	bag := diag.NewBag(max(bagSize, len(payload.Diagnostics)))
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Primary.in(file), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.in(file), n.Msg)
		}
		for _, cf := range cd.Fixes {
			edits := make([]diag.FixEdit, len(cf.Edits))
			for i, e := range cf.Edits {
				edits[i] = diag.FixEdit{Span: e.Span.in(file), NewText: e.NewText}
			}
			d = d.WithFix(cf.Title, edits...)
		}
		bag.Add(d)
	}
	events := make([]visit.Event, len(payload.Events))
	for i, ce := range payload.Events {
		events[i] = visit.Event{
			Kind:    visit.EventKind(ce.Kind),
			Name:    ce.Name,
			HasName: ce.HasName,
			Span:    ce.Span.in(file),
			VarKind: visit.VarKind(ce.VarKind),
		}
	}
	return bag, events
}
