// Package extract drives the resolver over every selected module of a
// program and assembles the public surface.
package extract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tsgonest/typesurface/internal/component"
	"github.com/tsgonest/typesurface/internal/config"
	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/resolver"
	"github.com/tsgonest/typesurface/internal/surface"
)

// Source is a type oracle that can also list its modules.
type Source interface {
	oracle.Checker
	Modules() []string
}

// Options configures a run.
type Options struct {
	// Workers bounds how many modules resolve at once. Zero means one.
	Workers int

	// PublicOnly drops exports documented @internal or @private.
	// With StrictVisibility only exports documented @public are kept.
	PublicOnly       bool
	StrictVisibility bool

	// Strict promotes resolver warnings to errors.
	Strict bool

	Resolver  resolver.Options
	Component component.Options

	// Include and Exclude select modules by glob. An empty Include selects
	// every module.
	Include []string
	Exclude []string

	Logger *slog.Logger
}

// Result is the outcome of a run.
type Result struct {
	Program     *surface.ProgramNode
	Diagnostics *diagnostic.Collector
}

// FromConfig returns extract options for a loaded config.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Workers:          cfg.Workers,
		PublicOnly:       cfg.PublicOnly,
		StrictVisibility: cfg.Resolve.StrictVisibility,
		Resolver:         cfg.ResolverOptions(),
		Component:        cfg.ComponentOptions(),
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
	}
}

// Run resolves every selected module of src.
//
// A module that fails to resolve is left out of the program and its error
// is reported in the returned multierror; the other modules are still
// returned. Cancellation is checked between modules.
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	modules := selectModules(src.Modules(), opts.Include, opts.Exclude)
	logger.DebugContext(ctx, "extracting modules", "count", len(modules), "workers", workers)

	result := &Result{
		Program:     &surface.ProgramNode{},
		Diagnostics: diagnostic.NewCollector(opts.Strict, false),
	}

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range modules {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			diags := diagnostic.NewCollector(opts.Strict, false)
			mod, err := resolver.NewContext(src, name, opts.Resolver, diags).ResolveModule()
			result.Diagnostics.Merge(diags)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.WarnContext(gctx, "module failed", "module", name, "error", err)
				result.Diagnostics.Error(diagnostic.CategoryModuleFailed, name, 0, err.Error())
				errs = multierror.Append(errs, err)
				return nil
			}
			mod.Exports = finish(mod.Exports, opts)
			result.Program.Modules = append(result.Program.Modules, mod)
			logger.DebugContext(gctx, "module resolved",
				"module", name, "exports", len(mod.Exports), "elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("extract canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("extract canceled: %w", err)
	}

	result.Program.SortModules()
	return result, errs.ErrorOrNil()
}

func selectModules(all, include, exclude []string) []string {
	if len(include) == 0 && len(exclude) == 0 {
		return all
	}
	if len(include) == 0 {
		include = []string{"**"}
	}
	var out []string
	for _, m := range all {
		if config.MatchesGlob(m, include, exclude) {
			out = append(out, m)
		}
	}
	return out
}

// finish applies the post-resolution passes to a module's exports.
func finish(exports []*surface.ExportNode, opts Options) []*surface.ExportNode {
	if opts.PublicOnly {
		kept := exports[:0:0]
		for _, e := range exports {
			if e.IsPublic(opts.StrictVisibility) {
				kept = append(kept, e)
			}
		}
		exports = kept
	}
	return component.Augment(exports, opts.Component)
}
