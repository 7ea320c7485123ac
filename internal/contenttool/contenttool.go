// Package contenttool is the boundary to the external content-build tool
// that produces the binary archives and manifests. assetctl does not know the
// archive format; it only stages inputs, invokes the tool and verifies that
// the expected outputs appeared.
package contenttool

import (
	"context"
)

// Entry names one bundle and the staged files that go into it. File paths are
// relative to the staging tree.
type Entry struct {
	Bundle string
	Files  []string
}

// Tool is the contract with the external content-build tool.
//
// Build is a blocking, synchronous call: it writes a raw archive named after
// each entry's bundle plus a manifest into outDir and returns the manifest
// path, or an error. There is no internal timeout; cancelling ctx kills the
// in-flight invocation with no partial-output guarantee.
//
// Configure applies per-asset import settings and must be idempotent: files
// that already carry sidecar metadata are skipped.
//
// SwitchPlatform reconfigures the tool's global platform state.
type Tool interface {
	Build(ctx context.Context, outDir string, entries []Entry, compression string, platform string) (string, error)
	Configure(ctx context.Context, assetPath string, kind KindSpec) error
	SwitchPlatform(ctx context.Context, target string) error
}

// ManifestSuffix is appended to an archive name to form its manifest name.
const ManifestSuffix = ".manifest"
