package util_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/assetforge/assetctl/internal/util"
)

func TestDedup(t *testing.T) {
	cases := []struct {
		note string
		in   []string
		exp  []string
	}{
		{note: "empty", in: nil, exp: nil},
		{note: "no duplicates", in: []string{"a", "b"}, exp: []string{"a", "b"}},
		{note: "order preserved", in: []string{"b", "a", "b", "a"}, exp: []string{"b", "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			if diff := cmp.Diff(tc.exp, util.Dedup(tc.in)); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOr(t *testing.T) {
	if diff := cmp.Diff([]string{"a"}, util.Or([]string{"a"}, []string{"b"})); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, util.Or(nil, []string{"b"})); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if util.Or[string](nil, nil) != nil {
		t.Error("expected nil for two empty slices")
	}
}
