package config

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/assetforge/assetctl/internal/platform"
	"github.com/assetforge/assetctl/internal/util"
)

// Built-in defaults, applied when neither the bundle nor the global section
// sets a value.
const (
	DefaultLinkMethod  = LinkCopy
	DefaultOutputDir   = "build"
	DefaultCompression = "lz4"
)

// BuildSpec is the effective, fully-resolved build specification for one
// bundle. It is created fresh per run and never written back to the
// configuration.
type BuildSpec struct {
	Bundle        string
	AssetDir      string
	OutputDir     string
	ScratchDir    string
	StagingDir    string
	ToolPath      string
	Targets       []string
	IncludedFiles []string
	ExcludedFiles []string
	NameTemplate  string
	Targetless    bool
	LinkMethod    LinkMethod
	Compression   string
}

// Resolve merges the named bundle with the global defaults into a BuildSpec.
// Each field takes the bundle's explicit value if present, else the global
// default, else the built-in default. Include/exclude patterns are replaced
// wholesale: a bundle that lists its own patterns fully supersedes the global
// lists rather than merging with them.
func (r *Root) Resolve(name string) (*BuildSpec, error) {
	b, ok := r.Bundles[name]
	if !ok {
		return nil, &Error{Bundle: name, Msg: "not defined in configuration"}
	}

	g := r.Global
	spec := &BuildSpec{
		Bundle:        b.Name,
		AssetDir:      b.AssetDir,
		OutputDir:     cmp.Or(b.OutputDir, g.OutputDir, DefaultOutputDir),
		ScratchDir:    g.ScratchDir,
		StagingDir:    g.StagingDir,
		ToolPath:      g.ToolPath,
		Targets:       util.Dedup(util.Or(b.Targets, g.Targets)),
		IncludedFiles: util.Or(b.IncludedFiles, g.IncludedFiles),
		ExcludedFiles: util.Or(b.ExcludedFiles, g.ExcludedFiles),
		NameTemplate:  b.NameTemplate,
		LinkMethod:    cmp.Or(b.LinkMethod, g.LinkMethod, DefaultLinkMethod),
		Compression:   cmp.Or(b.Compression, g.Compression, DefaultCompression),
	}

	// A bundle with no targets is always targetless. An explicit targetless
	// flag additionally forces a single platform-independent build even when
	// targets are listed.
	targetless := len(spec.Targets) == 0
	if b.Targetless != nil {
		targetless = targetless || *b.Targetless
	} else if g.Targetless != nil {
		targetless = targetless || *g.Targetless
	}
	spec.Targetless = targetless

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *BuildSpec) validate() error {
	if s.AssetDir == "" {
		return &Error{Bundle: s.Bundle, Msg: "asset_dir is required"}
	}
	fi, err := os.Stat(s.AssetDir)
	if err != nil {
		return &Error{Bundle: s.Bundle, Msg: fmt.Sprintf("asset directory %q is not readable", s.AssetDir), Err: err}
	}
	if !fi.IsDir() {
		return &Error{Bundle: s.Bundle, Msg: fmt.Sprintf("asset directory %q is not a directory", s.AssetDir)}
	}
	if f, err := os.Open(s.AssetDir); err != nil {
		return &Error{Bundle: s.Bundle, Msg: fmt.Sprintf("asset directory %q is not readable", s.AssetDir), Err: err}
	} else {
		f.Close()
	}

	for _, t := range s.Targets {
		if !platform.Known(t) {
			return &Error{
				Bundle: s.Bundle,
				Msg: fmt.Sprintf("unknown target %q (recognized: %s)",
					t, strings.Join(platform.Recognized(), ", ")),
			}
		}
	}

	if !s.LinkMethod.Valid() {
		return &Error{Bundle: s.Bundle, Msg: fmt.Sprintf("unknown link method %q", s.LinkMethod)}
	}
	return nil
}

// RestrictTarget narrows the build spec to a single target, used by the CLI's
// --target override. Targetless specs are unaffected.
func (s *BuildSpec) RestrictTarget(target string) error {
	if target == "" || s.Targetless {
		return nil
	}
	if !slices.Contains(s.Targets, target) {
		return &Error{Bundle: s.Bundle, Msg: fmt.Sprintf("target %q not in bundle's allowed targets", target)}
	}
	s.Targets = []string{target}
	return nil
}
