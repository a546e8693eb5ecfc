package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/kk-code-lab/imgview/internal/nav"
)

// menuItem is one clickable label of the menu bar.
type menuItem struct {
	label  string
	action nav.Action
	active bool
	x0, x1 int
}

func buildMenuItems(v View) []menuItem {
	direction := "r: left to right"
	if v.Params.Reversed {
		direction = "r: right to left"
	}
	mode := "m: " + v.Params.Mode.String()
	animate := "a: animate keys off"
	if v.AnimateOnKey {
		animate = "a: animate keys on"
	}

	return []menuItem{
		{label: "imgview"},
		{label: direction, action: nav.ToggleReversedAction{}, active: v.Params.Reversed && v.Params.Mode == layout.Paged},
		{label: mode, action: nav.ToggleModeAction{}, active: v.Params.Mode == layout.Continuous},
		{label: animate, action: nav.ToggleAnimateOnKeyAction{}, active: v.AnimateOnKey},
		{label: fmt.Sprintf("[ gap %d ]", v.Params.Gap), action: nav.AdjustGapAction{Delta: 1}},
		{label: fmt.Sprintf("-+ prefetch %d", v.Params.Prefetch), action: nav.AdjustPrefetchAction{Delta: 1}},
		{label: "? help", action: nav.HelpToggleAction{}},
	}
}

// drawMenuBar renders the top row and remembers item positions for clicks.
func (r *Renderer) drawMenuBar(v View, w int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.MenuBarBg).Foreground(r.theme.MenuBarFg)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, menuRow, ' ', nil, baseStyle)
	}

	items := buildMenuItems(v)
	x := 1
	for i := range items {
		item := &items[i]
		style := baseStyle
		if i == 0 {
			style = style.Bold(true)
		} else if item.active {
			style = style.Foreground(r.theme.MenuActiveFg)
		}
		item.x0 = x
		x = r.drawText(x, menuRow, w-x, item.label, style)
		item.x1 = x
		x += 2
		if x >= w {
			items = items[:i+1]
			break
		}
	}
	r.menu = items
}

// MenuActionAt returns the action of the menu item at cell (x, y).
func (r *Renderer) MenuActionAt(x, y int) (nav.Action, bool) {
	if y != menuRow {
		return nil, false
	}
	for _, item := range r.menu {
		if item.action != nil && x >= item.x0 && x < item.x1 {
			return item.action, true
		}
	}
	return nil, false
}
