package picker

import (
	"charm.land/lipgloss/v2"

	"github.com/cpa750/git-sift/internal/ui/styles"
)

// Style functions read the palette at render time so theme changes apply.

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
}

func needleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Normal)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted)
}

func itemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Normal)
}

// matchStyle marks runes that matched the query.
func matchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted).Italic(true)
}
