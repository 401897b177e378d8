// Package expand resolves #include directives in shader sources.
//
// A Resolver reads a file, strips comments, finds include directives,
// expands every target recursively and splices the results in place.
// Repeated includes of one target are reconciled by the same-includes
// policy. Results are cached per absolute path for the Resolver's lifetime;
// failed requests leave nothing in the cache, so a retry reads again.
//
// A Resolver is not safe for concurrent use.
package expand

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"glslx/internal/diag"
	"glslx/internal/marked"
	"glslx/internal/metrics"
	"glslx/internal/rules"
	"glslx/internal/source"
	"glslx/internal/trace"
)

// Resolver expands shader files and caches the results.
type Resolver struct {
	fsys     source.FS
	files    *source.FileSet
	root     string
	policy   rules.Policy
	reporter diag.Reporter
	metrics  *metrics.Metrics

	commentExprs  []string
	comments      []*regexp.Regexp
	include       *regexp.Regexp
	filenameGroup int

	cache map[string]*ShaderFile
}

// Option configures a Resolver in New.
type Option func(*Resolver)

// WithRoot sets the directory relative paths are resolved against.
// Defaults to the directory of the running executable.
func WithRoot(dir string) Option {
	return func(r *Resolver) { r.root = dir }
}

// WithPolicy layers p over the built-in defaults. The zero Policy changes
// nothing.
func WithPolicy(p rules.Policy) Option {
	return func(r *Resolver) {
		if p != (rules.Policy{}) {
			r.policy = r.policy.Merge(p)
		}
	}
}

// WithReporter sets where warnings of top-level requests go.
func WithReporter(rep diag.Reporter) Option {
	return func(r *Resolver) { r.reporter = rep }
}

// WithMetrics enables counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// WithFileSet records every read in fileSet instead of a private one.
// Reads then go through fileSet.FS().
func WithFileSet(fileSet *source.FileSet) Option {
	return func(r *Resolver) { r.files = fileSet }
}

// WithCommentPatterns replaces the deletable-region patterns.
func WithCommentPatterns(exprs ...string) Option {
	return func(r *Resolver) { r.commentExprs = exprs }
}

// New creates a Resolver reading through fsys (the host filesystem if nil).
func New(fsys source.FS, opts ...Option) (*Resolver, error) {
	if fsys == nil {
		fsys = source.OSFS{}
	}
	r := &Resolver{
		fsys:         fsys,
		policy:       rules.Defaults(),
		commentExprs: DefaultCommentPatterns,
		cache:        make(map[string]*ShaderFile),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.files == nil {
		r.files = source.NewFileSet(fsys)
	}

	if r.root == "" {
		dir, err := source.DefaultRoot()
		if err != nil {
			return nil, &Error{Kind: PathNormalizationFailure, Err: err}
		}
		r.root = dir
	}
	if err := r.SetRoot(r.root); err != nil {
		return nil, err
	}

	comments, err := compilePatterns(r.commentExprs)
	if err != nil {
		return nil, &Error{Kind: PatternCompilationFailure, Err: err}
	}
	r.comments = comments

	include, err := regexp.Compile(includePattern)
	if err != nil {
		return nil, &Error{Kind: PatternCompilationFailure, Err: err}
	}
	r.include = include
	r.filenameGroup = include.SubexpIndex("filename")
	return r, nil
}

// Root returns the directory relative paths are resolved against.
func (r *Resolver) Root() string { return r.root }

// SetRoot changes the root; a relative dir is taken from the working directory.
func (r *Resolver) SetRoot(dir string) error {
	abs, err := r.fsys.Abs("", dir)
	if err != nil {
		return &Error{Kind: PathNormalizationFailure, Path: dir, Err: err}
	}
	r.root = abs
	return nil
}

// Policy returns the resolver-wide policy.
func (r *Resolver) Policy() rules.Policy { return r.policy }

// Files returns the set every read is recorded in.
func (r *Resolver) Files() *source.FileSet { return r.files }

// Len returns the number of cached files.
func (r *Resolver) Len() int { return len(r.cache) }

// Cached returns the cached result for path without loading it.
func (r *Resolver) Cached(path string) (*ShaderFile, bool) {
	abs, err := r.fsys.Abs(r.root, path)
	if err != nil {
		return nil, false
	}
	f, ok := r.cache[abs]
	return f, ok
}

// Resolve expands path with the resolver-wide policy.
func (r *Resolver) Resolve(ctx context.Context, path string) (*ShaderFile, error) {
	return r.ResolveWith(ctx, path, rules.Policy{})
}

// ResolveWith expands path with overrides layered over the resolver-wide
// policy. Only explicit rules of overrides are guaranteed to win; a
// default rule in overrides replaces a default one of the resolver. The
// zero Policy changes nothing.
func (r *Resolver) ResolveWith(ctx context.Context, path string, overrides rules.Policy) (*ShaderFile, error) {
	policy := r.policy
	if overrides != (rules.Policy{}) {
		policy = policy.Merge(overrides)
	}

	span, ctx := trace.BeginCtx(ctx, trace.ScopeResolve, "resolve")
	started := time.Now()

	file, err := r.resolveTop(ctx, path, policy)
	r.metrics.ObserveResolve(time.Since(started))
	if err != nil {
		var expErr *Error
		if errors.As(err, &expErr) {
			r.metrics.Failure(expErr.Kind.String())
		}
		trace.Fail(ctx, "resolve", err)
		span.WithExtra("path", path).End("failed")
		return nil, err
	}
	span.WithExtra("path", source.RelativePath(file.Path, r.root)).End("")
	return file, nil
}

func (r *Resolver) resolveTop(ctx context.Context, path string, policy rules.Policy) (*ShaderFile, error) {
	abs, err := r.fsys.Abs(r.root, path)
	if err != nil {
		return nil, &Error{Kind: PathNormalizationFailure, Path: path, Root: r.root, Err: err}
	}
	return r.get(ctx, abs, newParseLog(policy))
}

func (r *Resolver) get(ctx context.Context, path string, log *parseLog) (*ShaderFile, error) {
	if f, ok := r.cache[path]; ok {
		r.metrics.CacheHit()
		return f, nil
	}
	r.metrics.CacheMiss()
	return r.load(ctx, path, log)
}

func (r *Resolver) load(ctx context.Context, path string, log *parseLog) (*ShaderFile, error) {
	span, ctx := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+source.RelativePath(path, r.root))
	defer span.End("")

	file, err := r.files.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, r.fail(FileNotFound, path, err)
		}
		return nil, r.fail(FileReadFailure, path, err)
	}
	r.metrics.FileLoaded(len(file.Content))

	text, err := r.stripComments(file.Text())
	if err != nil {
		return nil, r.fail(InvalidRange, path, err)
	}
	doc, err := r.findIncludes(path, text)
	if err != nil {
		return nil, err
	}
	log.enter(path)

	ids := doc.MarkIDs()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", source.RelativePath(path, r.root), err)
		}
		m, ok := doc.Mark(id)
		if !ok {
			return nil, r.fail(TextExpansionFailure, path, marked.ErrMarkNotFound)
		}
		if chain := log.cycle(m.Flag); chain != nil {
			return nil, &Error{Kind: InfiniteRecursion, Path: path, Files: chain, Root: r.root}
		}
		child, err := r.get(ctx, m.Flag, log.nested())
		if err != nil {
			return nil, err
		}
		if err := doc.ReplaceMarkContent(id, child.content); err != nil {
			return nil, r.fail(TextExpansionFailure, path, err)
		}
		r.metrics.IncludeSpliced()
		trace.Point(ctx, trace.ScopeMark, "splice", m.Flag)
	}

	if err := r.removeRepeats(ctx, path, doc, ids, log); err != nil {
		return nil, err
	}
	doc, err = r.postprocess(doc, log)
	if err != nil {
		return nil, err
	}

	shader := &ShaderFile{
		Path:     path,
		Text:     doc.Text(),
		Warnings: log.warnings,
		Includes: distinctTargets(doc, ids),
		Source:   file.ID,
		content:  doc,
	}
	r.cache[path] = shader
	span.WithExtra("includes", fmt.Sprint(len(ids)))
	return shader, nil
}

// postprocess runs after repeats are reconciled. Nothing to do yet.
func (r *Resolver) postprocess(doc *marked.Text[string], _ *parseLog) (*marked.Text[string], error) {
	return doc, nil
}
