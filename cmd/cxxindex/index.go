package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cxxindex/internal/compdb"
	"github.com/standardbeagle/cxxindex/internal/config"
	"github.com/standardbeagle/cxxindex/internal/debug"
	"github.com/standardbeagle/cxxindex/internal/executor"
	"github.com/standardbeagle/cxxindex/internal/export"
	"github.com/standardbeagle/cxxindex/internal/frontend/cxx"
	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/indexing"
	"github.com/standardbeagle/cxxindex/internal/vfs"
)

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Index every translation unit of the compilation database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "compile-commands",
				Aliases: []string{"p"},
				Usage:   "Path to compile_commands.json (overrides paths.compile_commands)",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"j"},
				Usage:   "Number of worker threads, 0 for one per hardware thread",
				Value:   -1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Index only the first N files, 0 for all",
				Value: -1,
			},
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"I"},
				Usage:   "Additional include path (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Ignore declarations in paths containing this substring or matching this glob (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "ignore-private",
				Usage: "Drop private members, nested records and enums",
			},
			&cli.BoolFlag{
				Name:  "no-system-includes",
				Usage: "Do not search the standard system include directories",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "JSON output file; a .zst suffix compresses it (default <output_dir>/index.json)",
			},
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "Also write the index to this SQLite database",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Print a readable listing of the index to stdout",
			},
		},
		Action: indexAction,
	}
}

func indexAction(c *cli.Context) error {
	fsys := afero.NewOsFs()

	cfg, err := loadConfig(c, fsys)
	if err != nil {
		return err
	}

	start := time.Now()
	idx, res, err := buildIndex(c.Context, fsys, cfg, c.Bool("quiet"))
	if err != nil {
		return err
	}
	if failures := res.Err(); failures != nil {
		log.Printf("%d of %d files failed to parse", len(res.Failures), res.Files)
		debug.LogIndexing("parse failures: %v\n", failures)
	}
	log.Printf("Indexed %d files in %v", res.Files, time.Since(start).Round(time.Millisecond))

	meta, err := export.NewMeta(cfg.Project.Name, cfg.Project.Version, idx)
	if err != nil {
		return err
	}
	log.Printf("Index fingerprint %s", meta.Fingerprint)

	output := c.String("output")
	if output == "" {
		output = filepath.Join(cfg.Paths.OutputDir, "index.json")
	}
	if err := fsys.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := export.WriteJSONFile(fsys, output, export.NewDocument(idx, meta)); err != nil {
		return err
	}
	log.Printf("Wrote %s", output)

	if path := c.String("sqlite"); path != "" {
		for _, stale := range []string{path, path + "-wal", path + "-shm"} {
			if err := fsys.Remove(stale); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", stale, err)
			}
		}
		if err := export.WriteSQLite(c.Context, path, idx, meta); err != nil {
			return err
		}
		log.Printf("Wrote %s", path)
	}

	if c.Bool("dump") {
		return indexing.Dump(c.App.Writer, idx)
	}
	return nil
}

// loadConfig reads the project files under --root, applies command line
// overrides and validates the result
func loadConfig(c *cli.Context, fsys afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(fsys, c.String("root"))
	if err != nil {
		return nil, err
	}

	if p := c.String("compile-commands"); p != "" {
		cfg.Paths.CompileCommands = p
	}
	if n := c.Int("threads"); n >= 0 {
		cfg.Debug.NumThreads = n
	}
	if n := c.Int("limit"); n >= 0 {
		cfg.Debug.LimitNumIndexedFiles = n
	}
	cfg.Includes.Paths = append(cfg.Includes.Paths, c.StringSlice("include")...)
	cfg.Ignore.Paths = append(cfg.Ignore.Paths, c.StringSlice("ignore")...)
	if c.Bool("ignore-private") {
		cfg.Ignore.PrivateMembers = true
	}
	if c.Bool("no-system-includes") {
		cfg.Includes.UseSystemIncludes = false
	}

	if err := config.ValidateConfig(fsys, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildIndex runs the whole pipeline: load the manifest, parse every unit on
// the worker pool, then resolve the index and log its statistics. quiet only
// silences per-file progress.
func buildIndex(ctx context.Context, fsys afero.Fs, cfg *config.Config, quiet bool) (*index.Index, *executor.Result, error) {
	db, err := compdb.Load(fsys, cfg.ManifestPath())
	if err != nil {
		return nil, nil, err
	}
	debug.LogIndexing("loaded %d files from %s\n", len(db.Files()), cfg.ManifestPath())

	idx := index.New()
	ix := indexing.New(idx, indexing.Options{
		RootDir:              cfg.Project.Root,
		IgnorePaths:          cfg.Ignore.Paths,
		IgnorePrivateMembers: cfg.Ignore.PrivateMembers,
	})

	exec := executor.New(cxx.New(), vfs.New(fsys, cfg.Project.Root), executor.Options{
		Threads:   cfg.Debug.NumThreads,
		Limit:     cfg.Debug.LimitNumIndexedFiles,
		ExtraArgs: cfg.IncludeArgs(),
		Quiet:     quiet,
	})
	res, err := exec.Run(ctx, db, ix)
	if err != nil {
		return nil, nil, err
	}

	indexing.Resolve(idx)
	indexing.PrintStats(idx)
	return idx, res, nil
}
