package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PromptRow is one line of the prompts table
type PromptRow struct {
	Name      string
	Content   string
	Variables []string
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// PromptsTable renders stored prompts as a rounded table
func PromptsTable(rows []PromptRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Name", "Content", "Variables").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return cellStyle.MaxWidth(60)
			}
			return cellStyle
		})

	for _, r := range rows {
		t.Row(r.Name, r.Content, strings.Join(r.Variables, ", "))
	}
	return t.Render()
}

// ShowPrompts prints the prompts table, or a hint when there are none
func ShowPrompts(rows []PromptRow) {
	if len(rows) == 0 {
		fmt.Fprintln(Stdout, mutedStyle.Render("No prompts yet. Create one with: shelldon prompts create"))
		return
	}
	fmt.Fprintln(Stdout, PromptsTable(rows))
}
