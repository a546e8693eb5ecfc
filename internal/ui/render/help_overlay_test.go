package render

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/imgview/internal/layout"
)

func TestBuildHelpOverlayLinesReflectsOptions(t *testing.T) {
	v := View{Params: layout.Params{Mode: layout.Paged, Reversed: true}, AnimateOnKey: true}

	joined := strings.Join(buildHelpOverlayLines(v), "\n")

	for _, want := range []string{
		"Navigation",
		"Switch to continuous scrolling",
		"Read left to right",
		"Snap keyboard page turns",
		"Quit",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("help overlay missing %q:\n%s", want, joined)
		}
	}
}

func TestBuildHelpOverlayLinesContinuous(t *testing.T) {
	v := View{Params: layout.Params{Mode: layout.Continuous}}

	joined := strings.Join(buildHelpOverlayLines(v), "\n")

	if !strings.Contains(joined, "Switch to paged layout") {
		t.Fatalf("expected paged toggle entry:\n%s", joined)
	}
	if !strings.Contains(joined, "Read right to left") {
		t.Fatalf("expected right to left entry:\n%s", joined)
	}
}

func TestFormatHelpOverlayEntryAlignsKeys(t *testing.T) {
	got := formatHelpOverlayEntry(helpOverlayEntry{keys: "m", desc: "Switch"})
	if got != "  m              Switch" {
		t.Fatalf("unexpected entry %q", got)
	}
}
