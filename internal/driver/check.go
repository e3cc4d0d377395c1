package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"tsiface/internal/diag"
	"tsiface/internal/observ"
	"tsiface/internal/source"
	"tsiface/internal/visit"
)

var log = commonlog.GetLogger("tsiface.driver")

// CheckOptions configures CheckFiles.
type CheckOptions struct {
	Parse ParseOptions
	// Jobs bounds the number of files parsed at once. Zero means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	// Progress, when set, receives one StatusQueued event per file and then
	// its working and finished events. It is not closed.
	Progress ProgressSink
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Events []visit.Event
	Cached bool
	Timing observ.Report
}

// CheckFiles parses every path in parallel. Results follow the sorted order
// of paths. A file that fails to load gets an IOLoadFileError diagnostic on
// an empty placeholder file; only cancellation aborts the run.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []FileResult, error) {
	paths = slices.Clone(paths)
	slices.Sort(paths)
	paths = slices.Compact(paths)

	fileSet := source.NewFileSet()
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent writes: load everything up front.
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	for i, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = fileID
		opts.Progress.send(Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each index is written by exactly one goroutine.
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			opts.Progress.send(Event{File: path, Status: StatusWorking})

			res := FileResult{Path: path, FileID: fileIDs[i]}
			if loadErr, failed := loadErrors[i]; failed {
				res.Bag = diag.NewBag(1)
				diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOLoadFileError,
					source.Span{File: fileIDs[i]}, "failed to load file: "+loadErr.Error()).Emit()
			} else if err := checkOne(fileSet, &res, opts); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res

			status := StatusDone
			switch {
			case res.Bag.HasErrors():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			opts.Progress.send(Event{File: path, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func checkOne(fileSet *source.FileSet, res *FileResult, opts CheckOptions) error {
	file := fileSet.Get(res.FileID)
	key := CacheKey(Digest(file.Hash), file.Path, opts.Parse)

	if opts.Cache != nil {
		payload, err := opts.Cache.Get(key)
		switch {
		case err == nil:
			res.Bag, res.Events = diskPayloadToResult(payload, res.FileID, opts.Parse.MaxDiagnostics)
			res.Cached = true
			return nil
		case !errors.Is(err, ErrCacheMiss):
			log.Warningf("cache read for %s: %v", file.Path, err)
		}
	}

	timer := observ.NewTimer()
	bag, events, err := parseInto(fileSet, file, opts.Parse, timer)
	if err != nil {
		return err
	}
	res.Bag, res.Events, res.Timing = bag, events, timer.Report()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, resultToDiskPayload(bag, events)); err != nil {
			log.Warningf("cache write for %s: %v", file.Path, err)
		}
	}
	return nil
}

// MergeBags collects every result's diagnostics into one bag.
func MergeBags(results []FileResult) *diag.Bag {
	total := 0
	for _, r := range results {
		if r.Bag != nil {
			total += r.Bag.Len()
		}
	}
	out := diag.NewBag(total)
	for _, r := range results {
		if r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	return out
}

// ErrorCount sums the error diagnostics over results.
func ErrorCount(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Bag != nil {
			n += r.Bag.ErrorCount()
		}
	}
	return n
}
