package styles

import (
	"strings"
	"testing"
)

func TestBadge(t *testing.T) {
	Apply(NoneTheme)
	t.Cleanup(func() { Apply(DefaultTheme) })

	got := Badge("git")
	if !strings.Contains(got, "[git]") {
		t.Errorf("Badge(git) = %q, want it to contain [git]", got)
	}
}

func TestApply_SwitchesTheme(t *testing.T) {
	Apply(DefaultTheme)
	withColor := AccentStyle

	Apply(NoneTheme)
	t.Cleanup(func() { Apply(DefaultTheme) })

	if AccentStyle.GetForeground() == withColor.GetForeground() {
		t.Error("Apply(NoneTheme) left the accent foreground unchanged")
	}
}
