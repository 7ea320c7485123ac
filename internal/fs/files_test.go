package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	ifs "github.com/assetforge/assetctl/internal/fs"
	"github.com/assetforge/assetctl/internal/util"
)

func TestListFiles(t *testing.T) {
	fsys := util.MapFS(map[string]string{
		"b.txt":          "b",
		"a/nested.png":   "n",
		"a/deeper/x.wav": "x",
	})

	files, err := ifs.ListFiles(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := []string{"a/deeper/x.wav", "a/nested.png", "b.txt"}
	if diff := cmp.Diff(exp, files); diff != "" {
		t.Errorf("unexpected files (-want +got):\n%s", diff)
	}
}

func TestContainsFiles(t *testing.T) {
	ok, err := ifs.ContainsFiles(util.MapFS(map[string]string{"x": ""}))
	if err != nil || !ok {
		t.Errorf("expected files to be found: %v", err)
	}

	ok, err = ifs.ContainsFiles(util.MapFS(nil))
	if err != nil || ok {
		t.Errorf("expected no files: %v", err)
	}
}

func TestNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full")
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !ifs.NonEmptyFile(full) {
		t.Error("expected non-empty file to qualify")
	}
	if ifs.NonEmptyFile(empty) {
		t.Error("empty file must not qualify")
	}
	if ifs.NonEmptyFile(filepath.Join(dir, "missing")) {
		t.Error("missing file must not qualify")
	}
	if ifs.NonEmptyFile(dir) {
		t.Error("directory must not qualify")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "deep", "nested", "dst")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ifs.MoveFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bs, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != "payload" {
		t.Errorf("unexpected content %q", bs)
	}
	if _, err := os.Stat(src); err == nil {
		t.Error("source must be gone after move")
	}
}
