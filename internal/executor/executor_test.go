package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/cxxindex/internal/compdb"
	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/vfs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeFrontend records every invocation and the working directory of the
// view it was handed
type fakeFrontend struct {
	mu        sync.Mutex
	calls     []frontend.Invocation
	cwds      []string
	views     map[*vfs.View]bool
	fail      map[string]error
	active    atomic.Int32
	maxSeen   atomic.Int32
	parseHook func(ctx context.Context) error
}

func (f *fakeFrontend) Parse(ctx context.Context, inv frontend.Invocation, view *vfs.View, v frontend.Visitor) error {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		old := f.maxSeen.Load()
		if n <= old || f.maxSeen.CompareAndSwap(old, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.cwds = append(f.cwds, view.Getwd())
	if f.views == nil {
		f.views = map[*vfs.View]bool{}
	}
	f.views[view] = true
	f.mu.Unlock()

	if f.parseHook != nil {
		if err := f.parseHook(ctx); err != nil {
			return err
		}
	}
	if err := f.fail[inv.File]; err != nil {
		return err
	}
	v.VisitNamespace(&frontend.NamespaceDecl{Decl: frontend.Decl{Name: inv.File}})
	return nil
}

type countingVisitor struct {
	mu    sync.Mutex
	names []string
}

func (c *countingVisitor) VisitFunction(*frontend.FunctionDecl) {}
func (c *countingVisitor) VisitRecord(*frontend.RecordDecl)     {}
func (c *countingVisitor) VisitEnum(*frontend.EnumDecl)         {}
func (c *countingVisitor) VisitNamespace(d *frontend.NamespaceDecl) {
	c.mu.Lock()
	c.names = append(c.names, d.Name)
	c.mu.Unlock()
}

func project(t *testing.T, n int) (*vfs.View, *compdb.Database) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src/build", 0o755))
	db := &compdb.Database{Path: "/src/build/compile_commands.json"}
	for i := 0; i < n; i++ {
		file := fmt.Sprintf("f%02d.cpp", i)
		require.NoError(t, afero.WriteFile(fs, "/src/"+file, []byte("int x;\n"), 0o644))
		db.Commands = append(db.Commands, compdb.Command{
			Directory: "/src",
			File:      file,
			Arguments: []string{"clang++", "-c", file, "-o", "build/" + file + ".o", "-MD", "-MF", "build/" + file + ".d"},
		})
	}
	return vfs.New(fs, "/"), db
}

func TestRunParsesEveryFile(t *testing.T) {
	view, db := project(t, 12)
	fe := &fakeFrontend{}
	vis := &countingVisitor{}

	res, err := New(fe, view, Options{Threads: 3, Quiet: true, ExtraArgs: []string{"-isystem/opt/inc"}}).Run(context.Background(), db, vis)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Files)
	assert.NoError(t, res.Err())

	sort.Strings(vis.names)
	require.Len(t, vis.names, 12)
	assert.Equal(t, "f00.cpp", vis.names[0])

	assert.LessOrEqual(t, fe.maxSeen.Load(), int32(3))
	assert.Len(t, fe.views, 12, "every command gets its own view")
	for _, cwd := range fe.cwds {
		assert.Equal(t, "/src", cwd)
	}
	assert.Equal(t, "/", view.Getwd(), "the shared view is never moved")

	args := fe.calls[0].Args
	assert.NotContains(t, args, "-o")
	assert.NotContains(t, args, "-MF")
	assert.NotContains(t, args, "-c")
	assert.Contains(t, args, "-fsyntax-only")
	assert.Equal(t, "-isystem/opt/inc", args[len(args)-1])
}

func TestRunLimitAppliesBeforeScheduling(t *testing.T) {
	view, db := project(t, 10)
	fe := &fakeFrontend{}
	vis := &countingVisitor{}

	res, err := New(fe, view, Options{Threads: 4, Limit: 3, Quiet: true}).Run(context.Background(), db, vis)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)
	sort.Strings(vis.names)
	assert.Equal(t, []string{"f00.cpp", "f01.cpp", "f02.cpp"}, vis.names)
}

func TestRunParseFailuresAreNotFatal(t *testing.T) {
	view, db := project(t, 4)
	fe := &fakeFrontend{fail: map[string]error{
		"f01.cpp": cxxerrors.NewParseError("/src/f01.cpp", 0, errors.New("boom")),
		"f02.cpp": errors.New("crashed"),
	}}
	vis := &countingVisitor{}

	res, err := New(fe, view, Options{Threads: 2, Quiet: true}).Run(context.Background(), db, vis)
	require.NoError(t, err)
	assert.Len(t, vis.names, 2)
	require.Len(t, res.Failures, 2)

	var perr *cxxerrors.ParseError
	assert.True(t, errors.As(res.Err(), &perr))
	var ierr *cxxerrors.IndexingError
	require.True(t, errors.As(res.Err(), &ierr))
	assert.True(t, ierr.IsRecoverable())
	assert.Equal(t, "/src/f02.cpp", ierr.FilePath)
}

func TestRunMissingDirectoryIsPerFile(t *testing.T) {
	view, db := project(t, 2)
	db.Commands[1].Directory = "/gone"
	fe := &fakeFrontend{}

	res, err := New(fe, view, Options{Quiet: true}).Run(context.Background(), db, &countingVisitor{})
	require.NoError(t, err)
	assert.Len(t, res.Failures, 1)
	assert.Len(t, fe.calls, 1)
}

func TestRunCancelled(t *testing.T) {
	view, db := project(t, 8)
	ctx, cancel := context.WithCancel(context.Background())
	fe := &fakeFrontend{parseHook: func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}}

	_, err := New(fe, view, Options{Threads: 2, Quiet: true}).Run(ctx, db, &countingVisitor{})
	assert.ErrorIs(t, err, context.Canceled)
}
