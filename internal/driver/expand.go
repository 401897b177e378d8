package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"glslx/internal/diag"
	"glslx/internal/expand"
	"glslx/internal/metrics"
	"glslx/internal/project"
	"glslx/internal/rules"
	"glslx/internal/source"
	"glslx/internal/trace"
)

// Options configures a batch run.
type Options struct {
	FS              source.FS // nil means the host filesystem
	Root            string
	Policy          rules.Policy
	CommentPatterns []string // nil keeps the built-in patterns
	Jobs            int      // <= 0 means GOMAXPROCS
	MaxDiagnostics  int      // per entry, <= 0 means unlimited
	Metrics         *metrics.Metrics
	Sink            ProgressSink
}

// Result is the outcome of one entry.
type Result struct {
	Path    string // как передали
	File    *expand.ShaderFile
	Err     error
	Bag     *diag.Bag
	Elapsed time.Duration

	worker int
}

// Failed reports whether the entry could not be expanded.
func (r Result) Failed() bool { return r.Err != nil }

// Batch holds results in input order.
type Batch struct {
	Root    string
	Results []Result
	Files   *source.FileSet
	Policy  rules.Policy

	resolvers []*expand.Resolver
}

// Failed returns the number of failed entries.
func (b *Batch) Failed() int {
	n := 0
	for _, r := range b.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Bag merges the diagnostics of all entries. A header shared by several
// entries reports its warnings once.
func (b *Batch) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for _, r := range b.Results {
		out.Merge(r.Bag)
	}
	out.Dedup()
	return out
}

// FileMetas describes every file reached from successful entries, each once.
func (b *Batch) FileMetas() []project.FileMeta {
	var out []project.FileMeta
	seen := make(map[string]bool)
	for _, r := range b.Results {
		if r.File == nil {
			continue
		}
		for _, m := range b.resolvers[r.worker].FileMetas(r.File.Path) {
			if seen[m.Path] {
				continue
			}
			seen[m.Path] = true
			out = append(out, m)
		}
	}
	return out
}

// ExpandFiles expands paths in parallel. Every worker owns its Resolver;
// the FileSet is shared. A failing entry is recorded in its Result and
// does not stop the others. The returned error is non-nil only when ctx
// is done or no Resolver could be built.
func ExpandFiles(ctx context.Context, paths []string, opts Options) (*Batch, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = source.OSFS{}
	}
	files := source.NewFileSet(fsys)

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	workers := max(1, min(jobs, len(paths)))

	resolvers := make([]*expand.Resolver, workers)
	for w := range resolvers {
		res, err := newResolver(fsys, files, opts)
		if err != nil {
			return nil, err
		}
		resolvers[w] = res
	}
	batch := &Batch{
		Root:      resolvers[0].Root(),
		Results:   make([]Result, len(paths)),
		Files:     files,
		Policy:    resolvers[0].Policy(),
		resolvers: resolvers,
	}
	if len(paths) == 0 {
		return batch, nil
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "expand-batch")
	span.WithExtra("entries", fmt.Sprint(len(paths))).WithExtra("workers", fmt.Sprint(workers))

	queue := make(chan int, len(paths))
	for i, p := range paths {
		queue <- i
		emit(opts.Sink, Event{File: p, Stage: StageExpand, Status: StatusQueued})
	}
	close(queue)

	g, gctx := errgroup.WithContext(ctx)
	for w, res := range resolvers {
		g.Go(func() error {
			for i := range queue {
				// Проверка отмены
				if err := gctx.Err(); err != nil {
					return err
				}
				result, err := expandOne(gctx, res, paths[i], opts)
				result.worker = w
				// индексы уникальны для каждой горутины, мьютекс не нужен
				batch.Results[i] = result
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return batch, err
	}
	span.End(fmt.Sprintf("%d failed", batch.Failed()))
	return batch, nil
}

func newResolver(fsys source.FS, files *source.FileSet, opts Options) (*expand.Resolver, error) {
	ropts := []expand.Option{
		expand.WithFileSet(files),
		expand.WithPolicy(opts.Policy),
		expand.WithMetrics(opts.Metrics),
	}
	if opts.Root != "" {
		ropts = append(ropts, expand.WithRoot(opts.Root))
	}
	if opts.CommentPatterns != nil {
		ropts = append(ropts, expand.WithCommentPatterns(opts.CommentPatterns...))
	}
	return expand.New(fsys, ropts...)
}

// expandOne returns an error only for cancellation; other failures stay in
// the Result.
func expandOne(ctx context.Context, res *expand.Resolver, path string, opts Options) (Result, error) {
	emit(opts.Sink, Event{File: path, Stage: StageExpand, Status: StatusWorking})
	started := time.Now()

	result := Result{Path: path, Bag: diag.NewBag(max(0, opts.MaxDiagnostics))}
	file, err := res.Resolve(ctx, path)
	result.Elapsed = time.Since(started)
	if err != nil {
		result.Err = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			emit(opts.Sink, Event{File: path, Stage: StageExpand, Status: StatusError, Err: err, Elapsed: result.Elapsed})
			return result, err
		}
		result.Bag.Add(expand.ErrorDiagnostic(err))
		emit(opts.Sink, Event{File: path, Stage: StageExpand, Status: StatusError, Err: err, Elapsed: result.Elapsed})
		return result, nil
	}

	result.File = file
	if res.Policy().DisplayWarnings.Value() {
		for _, w := range file.Warnings {
			result.Bag.Add(w.Diagnostic(res.Root()))
		}
	}
	emit(opts.Sink, Event{File: path, Stage: StageExpand, Status: StatusDone, Elapsed: result.Elapsed})
	return result, nil
}
