// Package static renders non-interactive terminal output.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/cpa750/git-sift/internal/git"
)

// RenderTable renders headers and rows as aligned columns without borders.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// BranchTable renders branches with their kind.
func BranchTable(branches []git.Branch) string {
	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, BranchTableRow(b))
	}
	return RenderTable([]string{"BRANCH", "KIND"}, rows)
}

// BranchTableRow returns the BRANCH and KIND cells for b.
func BranchTableRow(b git.Branch) []string {
	return []string{b.Name, b.Kind.String()}
}
