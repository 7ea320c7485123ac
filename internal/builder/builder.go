// Package builder drives the per-bundle build state machine: stage the
// selected assets, then for each target switch the platform context, invoke
// the external content-build tool, verify its outputs and promote them into
// the bundle's output directory.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/assetforge/assetctl/internal/config"
	"github.com/assetforge/assetctl/internal/contenttool"
	ifs "github.com/assetforge/assetctl/internal/fs"
	"github.com/assetforge/assetctl/internal/logging"
	"github.com/assetforge/assetctl/internal/match"
	"github.com/assetforge/assetctl/internal/metrics"
	"github.com/assetforge/assetctl/internal/naming"
	"github.com/assetforge/assetctl/internal/platform"
	"github.com/assetforge/assetctl/internal/report"
	"github.com/assetforge/assetctl/internal/stager"
)

// Failure stages, used for error context and metrics labels.
const (
	stageStage  = "stage"
	stageSwitch = "switch"
	stageInvoke = "invoke"
	stageVerify = "verify"
	stagePlace  = "place"
)

// InvocationError means the external tool returned a failure status.
type InvocationError struct {
	Bundle string
	Target string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("build invocation for bundle %q failed: %v", e.Bundle, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// OutputError means an expected build output is missing or could not be
// promoted to its final location.
type OutputError struct {
	Bundle string
	Target string
	Msg    string
}

func (e *OutputError) Error() string {
	return e.Msg
}

// Builder builds one bundle according to its resolved BuildSpec.
type Builder struct {
	spec        *config.BuildSpec
	tool        contenttool.Tool
	pctx        *platform.Context
	scratchDir  string
	keepScratch bool
	log         *logging.Logger
}

func New() *Builder {
	return &Builder{log: logging.NewNopLogger()}
}

func (b *Builder) WithSpec(spec *config.BuildSpec) *Builder {
	b.spec = spec
	return b
}

func (b *Builder) WithTool(tool contenttool.Tool) *Builder {
	b.tool = tool
	return b
}

func (b *Builder) WithPlatformContext(pctx *platform.Context) *Builder {
	b.pctx = pctx
	return b
}

func (b *Builder) WithScratchDir(dir string) *Builder {
	b.scratchDir = dir
	return b
}

func (b *Builder) WithKeepScratch(keep bool) *Builder {
	b.keepScratch = keep
	return b
}

func (b *Builder) WithLogger(log *logging.Logger) *Builder {
	b.log = log
	return b
}

// Build runs the bundle's state machine and returns one result per attempted
// build. A staging failure yields a single bundle-scoped failure; target
// failures are isolated so sibling targets still build.
func (b *Builder) Build(ctx context.Context) []report.Result {
	spec := b.spec
	start := time.Now()
	defer func() {
		metrics.BundleBuildDuration.WithLabelValues(spec.Bundle).Observe(time.Since(start).Seconds())
	}()

	staged, err := b.stage(ctx)
	if err != nil {
		b.log.Warnf("failed to stage bundle %q: %v", spec.Bundle, err)
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageStage).Inc()
		return []report.Result{report.Failure(spec.Bundle, "", err)}
	}

	files := make([]string, len(staged))
	for i := range staged {
		files[i] = staged[i].RelPath
	}

	// A targetless bundle builds exactly once in the current platform
	// context, even when targets are listed.
	targets := spec.Targets
	if spec.Targetless {
		targets = []string{""}
	}

	var results []report.Result
	for _, target := range targets {
		metrics.BundleBuildCount.Inc()
		res := b.buildTarget(ctx, target, files)
		if !res.Ok {
			b.log.Warnf("failed to build bundle %q target %q: %s", spec.Bundle, target, res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (b *Builder) stage(ctx context.Context) ([]stager.Asset, error) {
	spec := b.spec

	all, err := ifs.ListFiles(os.DirFS(spec.AssetDir))
	if err != nil {
		return nil, fmt.Errorf("list assets in %q: %w", spec.AssetDir, err)
	}

	selection := match.NewSelection(spec.IncludedFiles, spec.ExcludedFiles, b.log)
	selected := selection.Filter(all)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no files selected from %q", spec.AssetDir)
	}
	b.log.Debugf("bundle %q: selected %d of %d files", spec.Bundle, len(selected), len(all))

	st := stager.New(spec.LinkMethod).WithLogger(b.log)
	stagingDir := b.stagingDir()
	if err := st.CleanGenerated(stagingDir); err != nil {
		return nil, fmt.Errorf("clean staging tree: %w", err)
	}

	staged, err := st.Stage(ctx, spec.AssetDir, stagingDir, selected)
	if err != nil {
		return nil, err
	}

	// Per-asset import configuration is applied only to newly staged files;
	// assets with sidecar metadata keep their existing tuning.
	for _, a := range staged {
		if !a.New {
			continue
		}
		if err := b.tool.Configure(ctx, a.Staged, contenttool.KindFor(a.RelPath)); err != nil {
			return nil, fmt.Errorf("configure asset %q: %w", a.RelPath, err)
		}
	}
	return staged, nil
}

func (b *Builder) buildTarget(ctx context.Context, target string, files []string) report.Result {
	spec := b.spec

	if target != "" {
		if err := b.pctx.Switch(ctx, target); err != nil {
			metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageSwitch).Inc()
			return report.Failure(spec.Bundle, target, err)
		}
		metrics.PlatformSwitchCount.WithLabelValues(target).Inc()
	}

	outScratch := b.outScratchDir(target)
	if err := os.RemoveAll(outScratch); err != nil {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageInvoke).Inc()
		return report.Failure(spec.Bundle, target, err)
	}
	if err := os.MkdirAll(outScratch, 0o755); err != nil {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageInvoke).Inc()
		return report.Failure(spec.Bundle, target, err)
	}
	if !b.keepScratch {
		defer os.RemoveAll(outScratch)
	}

	entries := []contenttool.Entry{{Bundle: spec.Bundle, Files: files}}
	manifest, err := b.tool.Build(ctx, outScratch, entries, spec.Compression, target)
	if err != nil {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageInvoke).Inc()
		return report.Failure(spec.Bundle, target, &InvocationError{Bundle: spec.Bundle, Target: target, Err: err})
	}

	// Both outputs must exist and be non-empty before anything is promoted
	// out of scratch.
	archive := filepath.Join(outScratch, spec.Bundle)
	if !ifs.NonEmptyFile(archive) {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageVerify).Inc()
		return report.Failure(spec.Bundle, target, &OutputError{Bundle: spec.Bundle, Target: target,
			Msg: fmt.Sprintf("expected archive %q missing or empty after build", archive)})
	}
	if !ifs.NonEmptyFile(manifest) {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stageVerify).Inc()
		return report.Failure(spec.Bundle, target, &OutputError{Bundle: spec.Bundle, Target: target,
			Msg: fmt.Sprintf("expected manifest %q missing or empty after build", manifest)})
	}

	name := naming.Resolve(spec.NameTemplate, spec.Bundle, target, spec.Targetless)
	finalArchive := filepath.Join(spec.OutputDir, name)
	finalManifest := finalArchive + contenttool.ManifestSuffix

	if err := ifs.MoveFile(archive, finalArchive); err != nil {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stagePlace).Inc()
		return report.Failure(spec.Bundle, target, &OutputError{Bundle: spec.Bundle, Target: target,
			Msg: fmt.Sprintf("promote archive to %q: %v", finalArchive, err)})
	}
	if err := ifs.MoveFile(manifest, finalManifest); err != nil {
		metrics.BundleBuildFailed.WithLabelValues(spec.Bundle, stagePlace).Inc()
		return report.Failure(spec.Bundle, target, &OutputError{Bundle: spec.Bundle, Target: target,
			Msg: fmt.Sprintf("promote manifest to %q: %v", finalManifest, err)})
	}

	b.log.Infof("bundle %q target %q built: %s", spec.Bundle, target, finalArchive)
	return report.Success(spec.Bundle, target, finalArchive, finalManifest)
}

func (b *Builder) stagingDir() string {
	if b.spec.StagingDir != "" {
		return filepath.Join(b.spec.StagingDir, b.spec.Bundle)
	}
	return filepath.Join(b.scratchDir, "staging", b.spec.Bundle)
}

func (b *Builder) outScratchDir(target string) string {
	if target == "" {
		target = "any"
	}
	return filepath.Join(b.scratchDir, "out", b.spec.Bundle, target)
}
