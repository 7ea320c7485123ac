// Package stager materializes a filtered set of source assets into the
// staging tree the external content-build tool reads from. Source files are
// never mutated; the staging tree is the only thing written.
package stager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/assetforge/assetctl/internal/config"
	"github.com/assetforge/assetctl/internal/logging"
)

// SidecarSuffix marks an asset whose per-file import configuration has
// already been applied by the external configure tool. Staging leaves such
// files untouched.
const SidecarSuffix = ".meta"

var (
	ErrCrossVolume         = errors.New("hard link crosses volumes")
	ErrJunctionUnsupported = errors.New("junctions are not supported on this platform")
)

// Error is a staging failure for one path.
type Error struct {
	Method config.LinkMethod
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage %q via %s: %v", e.Path, e.Method, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Asset records one staged file.
type Asset struct {
	RelPath string // slash-separated path relative to the source root
	Source  string // absolute source path
	Staged  string // absolute path inside the staging tree
	Method  config.LinkMethod
	New     bool // true if staging created it in this run; only new assets need configuring
}

// HasSidecar reports whether path carries configuration sidecar metadata.
func HasSidecar(path string) bool {
	_, err := os.Stat(path + SidecarSuffix)
	return err == nil
}

type Stager struct {
	method config.LinkMethod
	log    *logging.Logger
}

func New(method config.LinkMethod) *Stager {
	return &Stager{method: method, log: logging.NewNopLogger()}
}

func (s *Stager) WithLogger(log *logging.Logger) *Stager {
	s.log = log
	return s
}

// CleanGenerated removes files from the staging tree that do not carry
// sidecar metadata, so a rebuild starts without stale leftovers while
// already-configured assets keep their tuning. Sidecar files themselves are
// kept alongside their owners.
func (s *Stager) CleanGenerated(stagingDir string) error {
	err := filepath.WalkDir(stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, SidecarSuffix) {
			return nil
		}
		if HasSidecar(path) {
			return nil
		}
		s.log.Debugf("removing stale staged file %q", path)
		return os.Remove(path)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Stage links the given files (slash-separated, relative to srcDir) into
// stagingDir using the stager's link method. Destinations that already carry
// sidecar metadata are left untouched: staging only adds newly discovered
// files, it never re-applies per-file tuning.
func (s *Stager) Stage(ctx context.Context, srcDir, stagingDir string, files []string) ([]Asset, error) {
	if s.method == config.LinkJunction {
		return s.stageJunctions(srcDir, stagingDir, files)
	}

	assets := make([]Asset, 0, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := filepath.Join(srcDir, filepath.FromSlash(rel))
		dst := filepath.Join(stagingDir, filepath.FromSlash(rel))
		asset := Asset{RelPath: rel, Source: src, Staged: dst, Method: s.method}

		if HasSidecar(dst) {
			assets = append(assets, asset)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, &Error{Method: s.method, Path: rel, Err: err}
		}
		if _, err := os.Lstat(dst); err == nil {
			// Leftover without sidecar, e.g. from a run with another link
			// method. Replace it.
			if err := os.Remove(dst); err != nil {
				return nil, &Error{Method: s.method, Path: rel, Err: err}
			}
		}

		if err := s.link(src, dst); err != nil {
			return nil, &Error{Method: s.method, Path: rel, Err: err}
		}
		asset.New = true
		assets = append(assets, asset)
	}
	return assets, nil
}

func (s *Stager) link(src, dst string) error {
	switch s.method {
	case config.LinkCopy:
		return copyFile(src, dst)
	case config.LinkSymlink:
		abs, err := filepath.Abs(src)
		if err != nil {
			return err
		}
		return os.Symlink(abs, dst)
	case config.LinkHardlink:
		if err := os.Link(src, dst); err != nil {
			if errors.Is(err, syscall.EXDEV) {
				return ErrCrossVolume
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown link method %q", s.method)
}

// stageJunctions aliases whole top-level directories instead of linking
// individual files; root-level files are copied. Windows only.
func (s *Stager) stageJunctions(srcDir, stagingDir string, files []string) ([]Asset, error) {
	if runtime.GOOS != "windows" {
		return nil, &Error{Method: config.LinkJunction, Path: srcDir, Err: ErrJunctionUnsupported}
	}

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, &Error{Method: config.LinkJunction, Path: stagingDir, Err: err}
	}

	linked := map[string]bool{}
	assets := make([]Asset, 0, len(files))
	for _, rel := range files {
		src := filepath.Join(srcDir, filepath.FromSlash(rel))
		dst := filepath.Join(stagingDir, filepath.FromSlash(rel))
		asset := Asset{RelPath: rel, Source: src, Staged: dst, Method: config.LinkJunction}

		top, _, nested := strings.Cut(rel, "/")
		if !nested {
			if !HasSidecar(dst) {
				if err := copyFile(src, dst); err != nil {
					return nil, &Error{Method: config.LinkJunction, Path: rel, Err: err}
				}
				asset.New = true
			}
			assets = append(assets, asset)
			continue
		}

		if !linked[top] {
			alias := filepath.Join(stagingDir, top)
			if _, err := os.Lstat(alias); errors.Is(err, fs.ErrNotExist) {
				cmd := exec.Command("cmd", "/c", "mklink", "/J", alias, filepath.Join(srcDir, top))
				if out, err := cmd.CombinedOutput(); err != nil {
					return nil, &Error{Method: config.LinkJunction, Path: top,
						Err: fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))}
				}
			}
			linked[top] = true
		}
		// The alias exposes the source's sidecar state directly.
		asset.New = !HasSidecar(dst)
		assets = append(assets, asset)
	}
	return assets, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
