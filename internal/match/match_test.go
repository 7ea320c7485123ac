package match_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assetforge/assetctl/internal/match"
)

func TestMatcher(t *testing.T) {
	cases := []struct {
		note    string
		pattern string
		path    string
		exp     bool
	}{
		{note: "leading doublestar, root level", pattern: "**/foo.png", path: "foo.png", exp: true},
		{note: "leading doublestar, one segment", pattern: "**/foo.png", path: "a/foo.png", exp: true},
		{note: "leading doublestar, two segments", pattern: "**/foo.png", path: "a/b/foo.png", exp: true},
		{note: "doublestar does not loosen suffix", pattern: "**/foo.png", path: "foo.pngx", exp: false},
		{note: "unanchored matches at root", pattern: "*.shader", path: "x.shader", exp: true},
		{note: "unanchored matches at depth", pattern: "*.shader", path: "dir/sub/x.shader", exp: true},
		{note: "star does not cross separators", pattern: "a*.png", path: "a/b.png", exp: false},
		{note: "question mark single char", pattern: "tex?.png", path: "tex1.png", exp: true},
		{note: "question mark needs a char", pattern: "tex?.png", path: "tex.png", exp: false},
		{note: "case-insensitive", pattern: "*.PNG", path: "textures/Rock.png", exp: true},
		{note: "anchored stays at root", pattern: "/x.shader", path: "x.shader", exp: true},
		{note: "anchored rejects nested", pattern: "/x.shader", path: "dir/x.shader", exp: false},
		{note: "directory pattern matches beneath", pattern: "textures/", path: "textures/rock/high.png", exp: true},
		{note: "directory pattern at depth", pattern: "textures/", path: "mods/a/textures/high.png", exp: true},
		{note: "directory pattern rejects sibling", pattern: "textures/", path: "audio/drum.wav", exp: false},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			m, err := match.Compile(tc.pattern)
			if err != nil {
				t.Fatalf("compile %q: %v", tc.pattern, err)
			}
			if act := m.Match(tc.path); act != tc.exp {
				t.Errorf("pattern %q path %q: got %v, want %v", tc.pattern, tc.path, act, tc.exp)
			}
		})
	}
}

func TestEmptyPatternLists(t *testing.T) {
	for _, path := range []string{"a.png", "x/y/z.wav", ""} {
		if !match.IsIncluded(path, nil) {
			t.Errorf("IsIncluded(%q, nil) = false, want true", path)
		}
		if match.IsExcluded(path, nil) {
			t.Errorf("IsExcluded(%q, nil) = true, want false", path)
		}
	}
}

func TestUncompilablePatternFailsClosed(t *testing.T) {
	if _, err := match.Compile("[unclosed"); err == nil {
		t.Fatal("expected compile error for unclosed character class")
	}
	// As part of a set, the bad pattern excludes nothing and includes nothing.
	if match.IsExcluded("a.png", []string{"[unclosed"}) {
		t.Error("bad exclude pattern must never match")
	}
	sel := match.NewSelection(nil, []string{"[unclosed"}, nil)
	if !sel.Selected("a.png") {
		t.Error("bad exclude pattern must not reject files")
	}
}

func TestSelection(t *testing.T) {
	cases := []struct {
		note     string
		include  []string
		exclude  []string
		paths    []string
		expected []string
	}{
		{
			note:     "empty include selects everything",
			paths:    []string{"a.png", "b/c.wav"},
			expected: []string{"a.png", "b/c.wav"},
		},
		{
			note:     "exclude removes what include selected",
			include:  []string{"*.png"},
			exclude:  []string{"*_low.png"},
			paths:    []string{"tex.png", "tex_low.png", "readme.txt"},
			expected: []string{"tex.png"},
		},
		{
			note:     "exclude applies without include",
			exclude:  []string{"**/cache/"},
			paths:    []string{"a.png", "cache/tmp.bin", "x/cache/tmp.bin"},
			expected: []string{"a.png"},
		},
		{
			note:     "include at any depth",
			include:  []string{"*.shader"},
			paths:    []string{"x.shader", "dir/sub/x.shader", "x.shaderx"},
			expected: []string{"x.shader", "dir/sub/x.shader"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			sel := match.NewSelection(tc.include, tc.exclude, nil)
			act := sel.Filter(tc.paths)
			if diff := cmp.Diff(tc.expected, act); diff != "" {
				t.Errorf("unexpected selection (-want +got):\n%s", diff)
			}
		})
	}
}
