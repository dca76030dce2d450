package search

import (
	"strings"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	t.Parallel()

	p := Params{
		SearchPaths:     []string{"/home/u", "/srv"},
		ExcludePatterns: []string{"node_modules"},
		AdditionalArgs:  []string{"--hidden"},
	}

	if got, again := DeriveKey(p), DeriveKey(p); got != again {
		t.Errorf("DeriveKey not deterministic: %q vs %q", got, again)
	}
}

func TestDeriveKey_OrderSignificant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		p1, p2 Params
	}{
		{
			name: "search path order",
			p1:   Params{SearchPaths: []string{"/a", "/b"}},
			p2:   Params{SearchPaths: []string{"/b", "/a"}},
		},
		{
			name: "exclude pattern order",
			p1:   Params{ExcludePatterns: []string{"dist", "vendor"}},
			p2:   Params{ExcludePatterns: []string{"vendor", "dist"}},
		},
		{
			name: "additional arg order",
			p1:   Params{AdditionalArgs: []string{"-H", "-I"}},
			p2:   Params{AdditionalArgs: []string{"-I", "-H"}},
		},
		{
			name: "value moved between fields",
			p1:   Params{SearchPaths: []string{"/a"}, ExcludePatterns: []string{"x"}},
			p2:   Params{SearchPaths: []string{"/a", "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			k1, k2 := DeriveKey(tt.p1), DeriveKey(tt.p2)
			if k1 == k2 {
				t.Errorf("DeriveKey collision: %q for both %+v and %+v", k1, tt.p1, tt.p2)
			}
		})
	}
}

func TestDeriveKey_NilEqualsEmpty(t *testing.T) {
	t.Parallel()

	k1 := DeriveKey(Params{SearchPaths: []string{"/a"}})
	k2 := DeriveKey(Params{SearchPaths: []string{"/a"}, ExcludePatterns: []string{}, AdditionalArgs: []string{}})
	if k1 != k2 {
		t.Errorf("nil and empty slices should derive the same key: %q vs %q", k1, k2)
	}
}

func TestDeriveFileName(t *testing.T) {
	t.Parallel()

	key := DeriveKey(Params{SearchPaths: []string{"/home/u"}})
	name := DeriveFileName(key)

	if !strings.HasPrefix(name, "cache_") {
		t.Errorf("DeriveFileName(%q) = %q, want cache_ prefix", key, name)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("DeriveFileName(%q) = %q, want .json suffix", key, name)
	}
	if len(name) != len("cache_")+16+len(".json") {
		t.Errorf("DeriveFileName(%q) = %q, want fixed-length hash of 16 chars", key, name)
	}
	if got := DeriveFileName(key); got != name {
		t.Errorf("DeriveFileName not stable: %q vs %q", name, got)
	}

	other := DeriveFileName(DeriveKey(Params{SearchPaths: []string{"/srv"}}))
	if other == name {
		t.Errorf("distinct keys derived the same file name %q", name)
	}
}
