package contenttool_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assetforge/assetctl/internal/contenttool"
)

func TestKindFor(t *testing.T) {
	cases := []struct {
		note string
		path string
		exp  contenttool.KindSpec
	}{
		{note: "texture", path: "chars/hero.png", exp: contenttool.KindSpec{Kind: contenttool.KindTexture, Args: []string{"--mipmaps"}}},
		{note: "uppercase extension", path: "chars/HERO.PNG", exp: contenttool.KindSpec{Kind: contenttool.KindTexture, Args: []string{"--mipmaps"}}},
		{note: "audio", path: "music/theme.wav", exp: contenttool.KindSpec{Kind: contenttool.KindAudio, Args: []string{"--decompress-on-load"}}},
		{note: "shader", path: "fx/bloom.shader", exp: contenttool.KindSpec{Kind: contenttool.KindShader}},
		{note: "unknown is data", path: "tables/loot.json", exp: contenttool.KindSpec{Kind: contenttool.KindData}},
		{note: "no extension", path: "README", exp: contenttool.KindSpec{Kind: contenttool.KindData}},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			if diff := cmp.Diff(tc.exp, contenttool.KindFor(tc.path)); diff != "" {
				t.Errorf("unexpected kind (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecToolMissingBinary(t *testing.T) {
	tool := contenttool.NewExecTool("/nonexistent/content-tool", nil)

	if _, err := tool.Build(context.Background(), t.TempDir(),
		[]contenttool.Entry{{Bundle: "core", Files: []string{"a.png"}}}, "lz4", ""); err == nil {
		t.Error("expected error from missing tool binary")
	}
	if err := tool.SwitchPlatform(context.Background(), "windows"); err == nil {
		t.Error("expected error from missing tool binary")
	}
}

func TestExecToolNoEntries(t *testing.T) {
	tool := contenttool.NewExecTool("/nonexistent/content-tool", nil)
	if _, err := tool.Build(context.Background(), t.TempDir(), nil, "lz4", ""); err == nil {
		t.Error("expected error for empty entry list")
	}
}
