package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/layout"
	textutil "github.com/kk-code-lab/imgview/internal/textutil"
	"github.com/mattn/go-runewidth"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(v View) []string {
	directionDesc := "Read right to left"
	if v.Params.Reversed {
		directionDesc = "Read left to right"
	}
	modeDesc := "Switch to continuous scrolling"
	if v.Params.Mode == layout.Continuous {
		modeDesc = "Switch to paged layout"
	}
	animateDesc := "Animate keyboard page turns"
	if v.AnimateOnKey {
		animateDesc = "Snap keyboard page turns"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "←/→ ↑/↓", desc: "Previous/next image on screen"},
				{keys: "PgUp/PgDn", desc: "Previous/next file by name"},
				{keys: "Home/End", desc: "First/last file"},
				{keys: "drag", desc: "Turn pages or scroll"},
				{keys: "click", desc: "Left/right third turns the page"},
				{keys: "wheel", desc: "Scroll (continuous layout)"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "m", desc: modeDesc},
				{keys: "r", desc: directionDesc},
				{keys: "a", desc: animateDesc},
				{keys: "[ / ]", desc: "Decrease/increase gap"},
				{keys: "- / +", desc: "Decrease/increase prefetch"},
				{keys: "F5", desc: "Reload directory"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q / Esc", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.Display(entry.keys)
	desc := textutil.Display(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(v View, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, baseStyle)
		}
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := runewidth.StringWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawText(titleStart, 0, w-titleStart, title, headerStyle)

	bodyStyle := baseStyle
	lines := buildHelpOverlayLines(v)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = fitText(text, w-4)
		r.drawText(2, row, w-4, text, bodyStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if len(footer) > 0 && h > 0 {
		footerText := fitText(footer, w)
		r.drawText(0, h-1, w, footerText, headerStyle)
	}
}
