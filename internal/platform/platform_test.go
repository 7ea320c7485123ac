package platform_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assetforge/assetctl/internal/platform"
)

func TestShort(t *testing.T) {
	cases := map[string]string{
		platform.Windows: "win",
		platform.Mac:     "mac",
		platform.Linux:   "linux",
		"other":          "other",
	}
	for target, exp := range cases {
		if act := platform.Short(target); act != exp {
			t.Errorf("Short(%q) = %q, expected %q", target, act, exp)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, target := range platform.Recognized() {
		if !platform.Known(target) {
			t.Errorf("expected %q to be known", target)
		}
	}
	if platform.Known("amiga") {
		t.Error("unexpected known target")
	}
}

func TestSwitchSkipsCurrent(t *testing.T) {
	var calls []string
	pctx := platform.NewContext(platform.Windows, func(_ context.Context, target string) error {
		calls = append(calls, target)
		return nil
	}, nil)

	if err := pctx.Switch(context.Background(), platform.Windows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("switch to current platform must be skipped: %v", calls)
	}

	if err := pctx.Switch(context.Background(), platform.Linux); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pctx.Switch(context.Background(), platform.Linux); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{platform.Linux}, calls); diff != "" {
		t.Errorf("unexpected switch calls (-want +got):\n%s", diff)
	}
	if pctx.Current() != platform.Linux {
		t.Errorf("unexpected current platform %q", pctx.Current())
	}
}

func TestSwitchFailureKeepsState(t *testing.T) {
	boom := errors.New("boom")
	pctx := platform.NewContext(platform.Windows, func(context.Context, string) error {
		return boom
	}, nil)

	if err := pctx.Switch(context.Background(), platform.Mac); !errors.Is(err, boom) {
		t.Fatalf("expected switcher error, got %v", err)
	}
	if pctx.Current() != platform.Windows {
		t.Errorf("failed switch must not change state, got %q", pctx.Current())
	}
}
