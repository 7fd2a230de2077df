package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/catalog"
)

// catalogCommand prints the node type catalog.
func (c *CLI) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the node types",
		Long:  `List the node types available to the palette and inspector: the built-ins plus any [[catalog.types]] from the config file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(catalogTable(c.config().BuildCatalog()))
			return nil
		},
	}
}

// catalogTable renders cat as a table, each tag in its own color.
func catalogTable(cat *catalog.Catalog) string {
	entries := cat.Entries()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{fmt.Sprint(i + 1), e.Glyph, e.Type, e.Label, e.Color}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("#", "", "Type", "Label", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row < 0 || row >= len(entries) {
				return lipgloss.NewStyle()
			}
			switch col {
			case 0:
				return StyleDim
			case 2, 4:
				return lipgloss.NewStyle().Foreground(lipgloss.Color(entries[row].Color))
			}
			return StyleValue
		}).
		Render()
}
