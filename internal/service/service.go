// Package service runs build batches. A batch resolves each requested bundle
// independently, builds them one at a time and folds every outcome into a
// single report. An ad hoc single bundle is simply a one-entry batch.
package service

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/assetforge/assetctl/internal/builder"
	"github.com/assetforge/assetctl/internal/config"
	"github.com/assetforge/assetctl/internal/contenttool"
	"github.com/assetforge/assetctl/internal/history"
	"github.com/assetforge/assetctl/internal/logging"
	"github.com/assetforge/assetctl/internal/platform"
	"github.com/assetforge/assetctl/internal/report"
)

// Batch builds a set of bundles from one configuration. Bundles are built
// sequentially: they share the scratch/staging workspace and the global
// platform context, so concurrent builds would corrupt shared state.
type Batch struct {
	root           *config.Root
	tool           contenttool.Tool
	pctx           *platform.Context
	scratchDir     string
	keepScratch    bool
	targetOverride string
	log            *logging.Logger
	bar            *progressbar.ProgressBar
	store          *history.Store
}

func NewBatch(root *config.Root) *Batch {
	return &Batch{root: root, log: logging.NewNopLogger()}
}

func (b *Batch) WithTool(tool contenttool.Tool) *Batch {
	b.tool = tool
	return b
}

func (b *Batch) WithPlatformContext(pctx *platform.Context) *Batch {
	b.pctx = pctx
	return b
}

func (b *Batch) WithScratchDir(dir string) *Batch {
	b.scratchDir = dir
	return b
}

func (b *Batch) WithKeepScratch(keep bool) *Batch {
	b.keepScratch = keep
	return b
}

// WithTargetOverride narrows every bundle in the batch to a single target.
func (b *Batch) WithTargetOverride(target string) *Batch {
	b.targetOverride = target
	return b
}

func (b *Batch) WithLogger(log *logging.Logger) *Batch {
	b.log = log
	return b
}

func (b *Batch) WithProgress(bar *progressbar.ProgressBar) *Batch {
	b.bar = bar
	return b
}

func (b *Batch) WithHistory(store *history.Store) *Batch {
	b.store = store
	return b
}

// Run builds the named bundles (all configured bundles if names is empty) and
// returns the batch report. A failure in one bundle — at resolution, staging
// or build — is recorded and does not stop the remaining bundles. The
// returned error is reserved for batch-fatal conditions; per-bundle failures
// are visible only in the report.
func (b *Batch) Run(ctx context.Context, names []string) (*report.Report, error) {
	if len(b.root.Bundles) == 0 {
		return nil, fmt.Errorf("configuration defines no bundles")
	}

	if len(names) == 0 {
		for _, bundle := range b.root.SortedBundles() {
			names = append(names, bundle.Name)
		}
	}

	tool := b.tool
	if tool == nil {
		tool = contenttool.NewExecTool(b.root.Global.ToolPath, b.log)
	}
	if want := b.root.Global.ToolVersion; want != "" {
		if et, ok := tool.(*contenttool.ExecTool); ok {
			switch v, err := et.Version(ctx); {
			case err != nil:
				b.log.Warnf("failed to determine content tool version: %v", err)
			case v != want:
				b.log.Warnf("content tool version %q does not match configured %q", v, want)
			}
		}
	}
	pctx := b.pctx
	if pctx == nil {
		pctx = platform.NewContext("", tool.SwitchPlatform, b.log)
	}
	scratch := cmp.Or(b.scratchDir, b.root.Global.ScratchDir, filepath.Join(os.TempDir(), "assetctl"))

	rep := &report.Report{}
	for _, name := range names {
		results := b.runBundle(ctx, name, tool, pctx, scratch)
		rep.Add(results...)
		if b.bar != nil {
			b.bar.Add(1)
		}
	}

	if b.store != nil {
		runID := time.Now().UTC().Format("20060102T150405Z")
		if err := b.store.Record(ctx, runID, rep); err != nil {
			b.log.Warnf("failed to record build history: %v", err)
		}
	}
	return rep, nil
}

func (b *Batch) runBundle(ctx context.Context, name string, tool contenttool.Tool, pctx *platform.Context, scratch string) []report.Result {
	spec, err := b.root.Resolve(name)
	if err != nil {
		b.log.Warnf("failed to resolve bundle %q: %v", name, err)
		return []report.Result{report.Failure(name, "", err)}
	}
	if err := spec.RestrictTarget(b.targetOverride); err != nil {
		b.log.Warnf("failed to resolve bundle %q: %v", name, err)
		return []report.Result{report.Failure(name, "", err)}
	}

	return builder.New().
		WithSpec(spec).
		WithTool(tool).
		WithPlatformContext(pctx).
		WithScratchDir(scratch).
		WithKeepScratch(b.keepScratch).
		WithLogger(b.log).
		Build(ctx)
}
