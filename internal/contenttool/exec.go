package contenttool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/assetforge/assetctl/internal/logging"
)

// ExecTool invokes the content-build tool executable. Discovery and
// installation of the executable are out of scope; the path comes from the
// configuration.
type ExecTool struct {
	path string
	log  *logging.Logger
}

func NewExecTool(path string, log *logging.Logger) *ExecTool {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ExecTool{path: path, log: log}
}

func (t *ExecTool) Build(ctx context.Context, outDir string, entries []Entry, compression string, platform string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no entries to build")
	}

	args := []string{"build", "--output", outDir, "--compression", compression}
	if platform != "" {
		args = append(args, "--platform", platform)
	}
	for _, e := range entries {
		args = append(args, "--bundle", e.Bundle+"="+strings.Join(e.Files, ","))
	}

	if err := t.run(ctx, args); err != nil {
		return "", err
	}
	return filepath.Join(outDir, entries[0].Bundle+ManifestSuffix), nil
}

func (t *ExecTool) Configure(ctx context.Context, assetPath string, kind KindSpec) error {
	args := []string{"configure", "--kind", kind.Kind.String()}
	args = append(args, kind.Args...)
	args = append(args, assetPath)
	return t.run(ctx, args)
}

func (t *ExecTool) SwitchPlatform(ctx context.Context, target string) error {
	return t.run(ctx, []string{"platform", target})
}

// Version reports the tool's version string, used to warn about mismatches
// with the configured tool_version.
func (t *ExecTool) Version(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, "version")
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s version: %w", filepath.Base(t.path), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (t *ExecTool) run(ctx context.Context, args []string) error {
	t.log.Debugf("exec %s %s", t.path, strings.Join(args, " "))

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if out != "" {
			return fmt.Errorf("%s %s: %w: %s", filepath.Base(t.path), args[0], err, out)
		}
		return fmt.Errorf("%s %s: %w", filepath.Base(t.path), args[0], err)
	}
	return nil
}
