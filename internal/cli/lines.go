package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/transit"
)

// lineInfo describes one catalog line for the lines command and the HTTP API.
type lineInfo struct {
	Name     string        `json:"name"`
	Color    transit.Color `json:"color"`
	Segments int           `json:"segments"`
	Initial  bool          `json:"initial"`
}

// catalogInfo lists every line in catalog order with its segment count.
func catalogInfo(n *transit.Network, initial []string) []lineInfo {
	counts := make(map[string]int)
	for _, s := range n.Segments() {
		counts[s.Line]++
	}
	lines := n.Catalog().Lines()
	out := make([]lineInfo, len(lines))
	for i, l := range lines {
		out[i] = lineInfo{
			Name:     l.Name,
			Color:    l.Color,
			Segments: counts[l.Name],
			Initial:  slices.Contains(initial, l.Name),
		}
	}
	return out
}

// linesCommand creates the lines command, which prints the line catalog.
func (c *CLI) linesCommand() *cobra.Command {
	var data dataFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lines",
		Short: "List the lines in the dataset with their colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLines(cmd.Context(), cmd.OutOrStdout(), data, asJSON)
		},
	}

	data.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

func (c *CLI) runLines(ctx context.Context, w io.Writer, data dataFlags, asJSON bool) error {
	n, err := c.loadNetwork(ctx, data)
	if err != nil {
		return err
	}
	info := catalogInfo(n, c.Config.Lines.Initial)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintln(w, StyleTitle.Render("Lines"))
	fmt.Fprintln(w, lineTable(info).Render())
	printDetail(w, "%d lines · ● shown initially", len(info))
	printNextStep(w, "Render a map", appName+` render --lines "`+firstLine(info)+`"`)
	return nil
}

// lineTable renders the catalog with a colour swatch per line.
func lineTable(info []lineInfo) *table.Table {
	rows := make([][]string, len(info))
	for i, l := range info {
		mark := ""
		if l.Initial {
			mark = "●"
		}
		rows[i] = []string{swatch(l.Color), l.Name, string(l.Color), strconv.Itoa(l.Segments), mark}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Line", "Colour", "Segments", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 2, 3:
				return cellStyle.Foreground(colorGray)
			case 4:
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle
		})
}

func firstLine(info []lineInfo) string {
	if len(info) == 0 {
		return "Central"
	}
	return info[0].Name
}
