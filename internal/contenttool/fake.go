package contenttool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Fake is a scripted Tool for tests. It records every call and writes
// plausible archive/manifest files, with per-bundle failure knobs.
type Fake struct {
	Configured []string // asset paths passed to Configure, in order
	Switched   []string // targets passed to SwitchPlatform, in order
	Built      []Entry  // entries passed to Build, in order

	FailBuild    map[string]bool // bundle name -> Build returns an error
	FailPlatform map[string]bool // platform -> Build returns an error
	OmitManifest map[string]bool // bundle name -> no manifest file written
	OmitArchive  map[string]bool // bundle name -> no archive file written
	EmptyArchive map[string]bool // bundle name -> archive written with zero bytes

	FailSwitch bool
}

func (f *Fake) Build(_ context.Context, outDir string, entries []Entry, compression string, platform string) (string, error) {
	f.Built = append(f.Built, entries...)

	if f.FailPlatform[platform] {
		return "", fmt.Errorf("tool reported failure for platform %q", platform)
	}

	var manifest string
	for _, e := range entries {
		if f.FailBuild[e.Bundle] {
			return "", fmt.Errorf("tool reported failure for bundle %q", e.Bundle)
		}

		archive := filepath.Join(outDir, e.Bundle)
		if !f.OmitArchive[e.Bundle] {
			content := []byte(fmt.Sprintf("archive %s %s %s %d", e.Bundle, platform, compression, len(e.Files)))
			if f.EmptyArchive[e.Bundle] {
				content = nil
			}
			if err := os.WriteFile(archive, content, 0o644); err != nil {
				return "", err
			}
		}

		manifest = archive + ManifestSuffix
		if !f.OmitManifest[e.Bundle] {
			if err := os.WriteFile(manifest, []byte("manifest: "+e.Bundle+"\n"), 0o644); err != nil {
				return "", err
			}
		}
	}
	return manifest, nil
}

func (f *Fake) Configure(_ context.Context, assetPath string, _ KindSpec) error {
	f.Configured = append(f.Configured, assetPath)
	return nil
}

func (f *Fake) SwitchPlatform(_ context.Context, target string) error {
	if f.FailSwitch {
		return fmt.Errorf("platform switch refused")
	}
	f.Switched = append(f.Switched, target)
	return nil
}
