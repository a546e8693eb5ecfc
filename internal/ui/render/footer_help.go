package render

import (
	"strings"

	"github.com/kk-code-lab/imgview/internal/layout"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(v View) string {
	parts := buildFooterHelpSegments(v)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(v View) []string {
	segments := contextualHelpSegments(v)
	return append(segments, persistentHelpSegments()...)
}

func contextualHelpSegments(v View) []string {
	switch {
	case v.Count == 0:
		return nil
	case v.Phase == "dragging":
		return []string{"release: settle"}
	case v.Params.Mode == layout.Continuous:
		return []string{
			"↑/↓/wheel: scroll",
			"Home/End: jump",
		}
	default:
		return []string{
			"←/→: page",
			"Home/End: jump",
		}
	}
}

func persistentHelpSegments() []string {
	return []string{
		"?: help",
		"q: quit",
	}
}
