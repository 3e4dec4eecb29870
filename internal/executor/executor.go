// Package executor runs the front-end over every translation unit of a
// build manifest on a bounded pool of workers.
package executor

import (
	"context"
	"errors"
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/cxxindex/internal/compdb"
	"github.com/standardbeagle/cxxindex/internal/debug"
	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/vfs"
)

// Options controls scheduling and the command lines handed to the front-end
type Options struct {
	// Threads caps concurrent workers; 0 means one per hardware thread
	Threads int
	// Limit indexes only the first Limit files of the manifest; 0 means all
	Limit int
	// ExtraArgs are appended to every command line, e.g. -isystem paths
	ExtraArgs []string
	// Quiet suppresses per-file progress lines
	Quiet bool
}

// Result summarizes a run. Failures holds one error per file that could not
// be parsed; they never abort the run.
type Result struct {
	Files    int
	Failures []error
}

// Err folds the per-file failures into one error, or nil
func (r *Result) Err() error {
	return cxxerrors.NewMultiError(r.Failures).ErrorOrNil()
}

type Executor struct {
	frontend frontend.Frontend
	view     *vfs.View
	opts     Options
	adjust   compdb.ArgumentsAdjuster
}

// New creates an executor parsing through fe. view is cloned for every
// worker and never modified.
func New(fe frontend.Frontend, view *vfs.View, opts Options) *Executor {
	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU()
	}
	return &Executor{
		frontend: fe,
		view:     view,
		opts:     opts,
		adjust: compdb.Chain(
			compdb.StripOutput(),
			compdb.StripDependencyFile(),
			compdb.SyntaxOnly(),
			compdb.AppendArguments(opts.ExtraArgs...),
		),
	}
}

// progress is the "[i/total]" counter shared by workers
type progress struct {
	mu    sync.Mutex
	done  int
	total int
}

func (p *progress) next() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	return p.done
}

// Run parses every file of db and reports declarations to v. It returns
// once all workers have finished. The returned error is non-nil only when
// ctx is cancelled; parse failures are logged and collected in the Result.
func (e *Executor) Run(ctx context.Context, db *compdb.Database, v frontend.Visitor) (*Result, error) {
	files := db.Files()
	if e.opts.Limit > 0 && e.opts.Limit < len(files) {
		debug.LogExecutor("limiting run to the first %d of %d files", e.opts.Limit, len(files))
		files = files[:e.opts.Limit]
	}

	result := &Result{Files: len(files)}
	var failMu sync.Mutex
	fail := func(err error) {
		failMu.Lock()
		result.Failures = append(result.Failures, err)
		failMu.Unlock()
	}

	prog := &progress{total: len(files)}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Threads)

	for _, file := range files {
		commands := db.CommandsFor(file)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n := prog.next()
			if !e.opts.Quiet {
				log.Printf("[%d/%d] processing %s", n, prog.total, file)
			}
			for _, cmd := range commands {
				if err := e.runCommand(gctx, cmd, v); err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					log.Printf("failed to index %s: %v", file, err)
					fail(err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// runCommand parses one command on a private filesystem view
func (e *Executor) runCommand(ctx context.Context, cmd compdb.Command, v frontend.Visitor) error {
	view := e.view.Clone()
	if err := view.Chdir(cmd.Directory); err != nil {
		return cxxerrors.NewIndexingError("chdir", err).WithFile(cmd.Path()).WithRecoverable(true)
	}

	args := cmd.Arguments
	if len(args) == 0 {
		args = []string{"c++", cmd.File}
	}
	args = e.adjust(append([]string(nil), args...), cmd.Path())
	debug.LogExecutor("%s: %v", cmd.Path(), args)

	inv := frontend.Invocation{File: cmd.File, Directory: cmd.Directory, Args: args}
	if err := e.frontend.Parse(ctx, inv, view, v); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		var perr *cxxerrors.ParseError
		if errors.As(err, &perr) {
			return err
		}
		return cxxerrors.NewIndexingError("parse", err).WithFile(cmd.Path()).WithRecoverable(true)
	}
	return nil
}
