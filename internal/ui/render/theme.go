package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background   tcell.Color
	Foreground   tcell.Color
	MenuBarBg    tcell.Color
	MenuBarFg    tcell.Color
	MenuActiveFg tcell.Color
	FooterBg     tcell.Color
	FooterFg     tcell.Color
	Placeholder  tcell.Color
	ErrorFg      tcell.Color

	// backdrop is Background as a blendable colour for translucent pixels.
	backdrop colorful.Color
}

// ThemeColors are hex colour strings, typically from the config file.
type ThemeColors struct {
	Background  string
	MenuBar     string
	MenuText    string
	MenuActive  string
	StatusBar   string
	StatusText  string
	Placeholder string
	Error       string
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	theme, _ := ParseTheme(ThemeColors{
		Background:  "#101010",
		MenuBar:     "#30343c",
		MenuText:    "#d0d0d0",
		MenuActive:  "#87d7ff",
		StatusBar:   "#30343c",
		StatusText:  "#d0d0d0",
		Placeholder: "#3a3a3a",
		Error:       "#ff5f5f",
	})
	return theme
}

// ParseTheme converts hex colours to a theme. Empty strings keep the default.
func ParseTheme(colors ThemeColors) (ColorTheme, error) {
	theme := ColorTheme{
		Background:   tcell.ColorBlack,
		Foreground:   tcell.ColorWhite,
		MenuBarBg:    tcell.Color236,
		MenuBarFg:    tcell.Color252,
		MenuActiveFg: tcell.Color117,
		FooterBg:     tcell.Color236,
		FooterFg:     tcell.Color252,
		Placeholder:  tcell.Color237,
		ErrorFg:      tcell.Color203,
		backdrop:     colorful.Color{},
	}

	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"background", colors.Background, &theme.Background},
		{"menu_bar", colors.MenuBar, &theme.MenuBarBg},
		{"menu_text", colors.MenuText, &theme.MenuBarFg},
		{"menu_active", colors.MenuActive, &theme.MenuActiveFg},
		{"status_bar", colors.StatusBar, &theme.FooterBg},
		{"status_text", colors.StatusText, &theme.FooterFg},
		{"placeholder", colors.Placeholder, &theme.Placeholder},
		{"error", colors.Error, &theme.ErrorFg},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return theme, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = toTcell(c)
		if f.dst == &theme.Background {
			theme.backdrop = c
		}
	}
	return theme, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
