package config

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Internal configuration data structures for assetctl.

// Root is the top-level configuration structure. Bundles are keyed by name;
// the key is injected into each Bundle on unmarshal.
type Root struct {
	Global  Global             `json:"global,omitzero"`
	Bundles map[string]*Bundle `json:"bundles,omitempty"`
	History History            `json:"history,omitzero"`

	_ struct{} `additionalProperties:"false"`
}

// Global holds the defaults applied to every bundle that does not override
// them.
type Global struct {
	ToolPath      string     `json:"tool_path,omitempty"`
	ToolVersion   string     `json:"tool_version,omitempty"`
	OutputDir     string     `json:"output_dir,omitempty"`
	ScratchDir    string     `json:"scratch_dir,omitempty"`
	StagingDir    string     `json:"staging_dir,omitempty"`
	Targets       StringSet  `json:"targets,omitempty"`
	LinkMethod    LinkMethod `json:"link_method,omitzero"`
	IncludedFiles StringSet  `json:"included_files,omitempty"`
	ExcludedFiles StringSet  `json:"excluded_files,omitempty"`
	Targetless    *bool      `json:"targetless,omitempty"`
	Compression   string     `json:"compression,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// Bundle defines one named content bundle.
type Bundle struct {
	Name          string     `json:"name"`
	AssetDir      string     `json:"asset_dir"`
	OutputDir     string     `json:"output_dir,omitempty"`
	Targets       StringSet  `json:"targets,omitempty"`
	IncludedFiles StringSet  `json:"included_files,omitempty"`
	ExcludedFiles StringSet  `json:"excluded_files,omitempty"`
	NameTemplate  string     `json:"name_template,omitempty"`
	Targetless    *bool      `json:"targetless,omitempty"`
	LinkMethod    LinkMethod `json:"link_method,omitzero"`
	Compression   string     `json:"compression,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// History configures the optional build-history database.
type History struct {
	Database string `json:"database,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// LinkMethod selects how assets are materialized into the staging tree.
type LinkMethod string

const (
	LinkCopy     LinkMethod = "copy"
	LinkSymlink  LinkMethod = "symlink"
	LinkHardlink LinkMethod = "hardlink"
	LinkJunction LinkMethod = "junction"
)

func (m LinkMethod) Valid() bool {
	switch m {
	case LinkCopy, LinkSymlink, LinkHardlink, LinkJunction:
		return true
	}
	return false
}

type StringSet []string

func (s StringSet) Equal(other StringSet) bool {
	if len(s) != len(other) {
		return false
	}
	a, b := slices.Clone(s), slices.Clone(other)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for the Root
// struct. It lets bundles be defined as a mapping keyed by name and injects
// the key into each entry.
func (r *Root) UnmarshalYAML(bs []byte) error {
	type rawRoot Root // avoid recursive calls to UnmarshalYAML by type aliasing
	var raw rawRoot

	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	*r = Root(raw)
	return r.unmarshal()
}

func (r *Root) UnmarshalJSON(bs []byte) error {
	type rawRoot Root
	var raw rawRoot

	if err := json.Unmarshal(bs, &raw); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	*r = Root(raw)
	return r.unmarshal()
}

func (r *Root) unmarshal() error {
	for name, b := range r.Bundles {
		if b == nil {
			b = &Bundle{}
			r.Bundles[name] = b
		}
		b.Name = name
	}
	return nil
}

// SortedBundles iterates bundles in name order for deterministic batches.
func (r *Root) SortedBundles() iter.Seq2[int, *Bundle] {
	names := make([]string, 0, len(r.Bundles))
	for name := range r.Bundles {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(yield func(int, *Bundle) bool) {
		for i, name := range names {
			if !yield(i, r.Bundles[name]) {
				return
			}
		}
	}
}

// Load merges the given configuration files and directories, validates the
// result against the configuration schema and decodes it.
func Load(paths []string) (*Root, error) {
	bs, err := Merge(paths, false)
	if err != nil {
		return nil, err
	}

	if err := Validate(bs); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var root Root
	if err := yaml.Unmarshal(bs, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Error is a configuration error scoped to one bundle. Resolution failures
// for one bundle are reported without blocking siblings in the same batch.
type Error struct {
	Bundle string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Bundle != "" {
		fmt.Fprintf(&b, "bundle %q: ", e.Bundle)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
