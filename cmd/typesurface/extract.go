package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/buildcache"
	"github.com/tsgonest/typesurface/internal/extract"
	"github.com/tsgonest/typesurface/internal/runner"
	"github.com/tsgonest/typesurface/internal/snapshot"
	"github.com/tsgonest/typesurface/internal/surface"
	"github.com/tsgonest/typesurface/internal/watcher"
)

type extractFlags struct {
	configPath string
	snapshot   string
	out        string
	workers    int
	watch      bool
	force      bool
	strict     bool
	timing     bool
	exec       string
}

func newExtractCmd(a *app) *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Resolve every module of a snapshot and write its public surface",
		Example: `  typesurface extract
  typesurface extract --snapshot types.yaml --out dist/surface.json
  typesurface extract --workers 8 --strict
  typesurface extract --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			levelSet := cmd.Flags().Changed("log-level")
			a.hook = nil
			if f.exec != "" {
				hook, err := runner.Parse(f.exec, "")
				if err != nil {
					return errors.Errorf("--exec: %w", err)
				}
				hook.Stdout, hook.Stderr = a.stdout, a.stderr
				a.hook = hook
				defer hook.Stop()
			}
			err := a.extract(ctx, f, levelSet)
			if !f.watch {
				if err == nil && a.hook != nil {
					return a.hook.Wait()
				}
				return err
			}
			if err != nil {
				a.logger.ErrorContext(ctx, "extract failed", "error", err)
			}
			return a.watch(ctx, f, levelSet)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file (default: discover typesurface.yaml)")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "Snapshot document to read (overrides config)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file, - for stdout (overrides config)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Modules resolved in parallel (overrides config)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Re-extract when the snapshot or config changes")
	cmd.Flags().BoolVar(&f.force, "force", false, "Ignore the cache and always extract")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&f.timing, "timing", false, "Print a timing breakdown")
	cmd.Flags().StringVar(&f.exec, "exec", "", "Command to run after each successful extraction (restarted in watch mode)")
	return cmd
}

// extract runs one extraction.
func (a *app) extract(ctx context.Context, f extractFlags, levelSet bool) error {
	timing := &TimingReport{}
	start := time.Now()

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("could not get working directory: %w", err)
	}
	res, err := loadOrDiscoverConfig(f.configPath, cwd)
	if err != nil {
		return err
	}
	cfg := res.Config
	if res.Path != "" {
		a.logger.DebugContext(ctx, "loaded config", "path", res.Path)
	}
	if !levelSet && cfg.LogLevel != "" {
		if logger, err := newLogger(a.stderr, cfg.LogLevel); err == nil {
			a.logger = logger
		}
	}
	if f.snapshot != "" {
		cfg.Snapshot = f.snapshot
	}
	if f.out != "" {
		cfg.Output = f.out
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	snapshotPath := res.resolvePath(cfg.Snapshot)
	output := res.resolvePath(cfg.Output)
	timing.Config = time.Since(start)

	// Cache check
	toFile := output != "" && output != "-"
	snapshotHash := buildcache.HashFile(snapshotPath)
	configHash := ""
	if res.Path != "" {
		configHash = buildcache.HashFile(res.Path)
	}
	if toFile && !f.force {
		if buildcache.Load(buildcache.CachePath(output)).IsValid(snapshotHash, configHash) {
			a.logger.InfoContext(ctx, "surface is up to date", "output", output)
			return nil
		}
	}

	phase := time.Now()
	program, err := snapshot.LoadFile(snapshotPath)
	if err != nil {
		return err
	}
	timing.Snapshot = time.Since(phase)

	phase = time.Now()
	opts := extract.FromConfig(cfg)
	opts.Strict = f.strict
	opts.Logger = a.logger
	result, runErr := extract.Run(ctx, program, opts)
	if result == nil {
		return runErr
	}
	timing.Resolve = time.Since(phase)
	result.Diagnostics.Log(ctx, a.logger)

	phase = time.Now()
	if err := a.writeSurface(output, result.Program); err != nil {
		return err
	}
	timing.Write = time.Since(phase)

	failed := runErr != nil || result.Diagnostics.HasErrors()
	if toFile {
		cachePath := buildcache.CachePath(output)
		if failed {
			buildcache.Delete(cachePath)
		} else if err := buildcache.Save(cachePath, buildcache.New(snapshotHash, configHash, []string{output})); err != nil {
			a.logger.WarnContext(ctx, "could not save cache", "error", err)
		}
	}

	timing.Total = time.Since(start)
	if f.timing {
		timing.Print(a.stderr)
	}

	modules := len(result.Program.Modules)
	if summary := result.Diagnostics.Summary(); summary != "" {
		fmt.Fprintf(a.stderr, "extracted %d module(s): %s\n", modules, summary)
	} else {
		fmt.Fprintf(a.stderr, "extracted %d module(s)\n", modules)
	}

	if runErr != nil {
		return runErr
	}
	if result.Diagnostics.HasErrors() {
		return errors.Errorf("extract finished with %d error(s)", result.Diagnostics.ErrorCount())
	}
	return a.runHook(ctx, output)
}

// runHook (re)starts the --exec command with the output path in its
// environment.
func (a *app) runHook(ctx context.Context, output string) error {
	if a.hook == nil {
		return nil
	}
	a.hook.SetEnv("TYPESURFACE_OUTPUT=" + output)
	a.logger.DebugContext(ctx, "running follow-up command", "command", a.hook)
	return a.hook.Restart()
}

func (a *app) writeSurface(output string, program *surface.ProgramNode) error {
	if output == "" || output == "-" {
		return surface.Encode(a.stdout, program)
	}
	data, err := surface.Marshal(program)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Errorf("writing %s: %w", output, err)
	}
	return nil
}

// watch re-runs extract whenever the snapshot or config file changes, until
// ctx is canceled.
func (a *app) watch(ctx context.Context, f extractFlags, levelSet bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("could not get working directory: %w", err)
	}
	res, err := loadOrDiscoverConfig(f.configPath, cwd)
	if err != nil {
		return err
	}
	snapshotPath := f.snapshot
	if snapshotPath == "" {
		snapshotPath = res.Config.Snapshot
	}
	files := []string{res.resolvePath(snapshotPath)}
	if res.Path != "" {
		files = append(files, res.Path)
	}

	w, err := watcher.New(files, watcher.DefaultDebounce, func(events []watcher.Event) {
		a.logger.InfoContext(ctx, "change detected, re-extracting", "file", events[len(events)-1].Path)
		if err := a.extract(ctx, f, levelSet); err != nil {
			a.logger.ErrorContext(ctx, "extract failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	w.SetLogger(a.logger)
	a.logger.InfoContext(ctx, "watching for changes", "files", files)
	return w.Watch(ctx)
}
