package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dshills/keyroute/internal/input/platform"
	"github.com/dshills/keyroute/internal/input/shortcut"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	scopeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ccfd8"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#908caa"))
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shortcuts with their labels for a platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			defs := cat.All()
			if scope != "" {
				s, err := shortcut.ParseScope(scope)
				if err != nil {
					return err
				}
				defs = cat.InScope(s)
			}
			renderList(cmd.OutOrStdout(), defs, cfg.ResolvedPlatform())
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "only list one scope (overlay, conversation, workspace, global, component)")
	return cmd
}

// renderList writes one row per definition: id, label, scope, flags and
// description.
func renderList(w io.Writer, defs []shortcut.Definition, p platform.Platform) {
	header := []string{"ID", "SHORTCUT", "SCOPE", "FLAGS", "DESCRIPTION"}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{
			d.ID,
			shortcut.FormatLabel(d, p),
			fmt.Sprintf("%s/%d", d.Scope, d.ResolvedPriority()),
			definitionFlags(d),
			d.Description,
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	fmt.Fprintf(w, "Shortcuts for %s\n\n", p)
	fmt.Fprintln(w, formatRow(header, widths, func(_ int, s string) string { return headerStyle.Render(s) }))
	for _, row := range rows {
		fmt.Fprintln(w, formatRow(row, widths, func(col int, s string) string {
			switch col {
			case 2:
				return scopeStyle.Render(s)
			case 3:
				return flagStyle.Render(s)
			}
			return s
		}))
	}
}

// formatRow pads each cell to its column width before styling so ANSI
// sequences do not skew alignment.
func formatRow(cells []string, widths []int, style func(col int, s string) string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = style(i, cell)
			continue
		}
		parts[i] = style(i, runewidth.FillRight(cell, widths[i]))
	}
	return strings.Join(parts, "  ")
}

func definitionFlags(d shortcut.Definition) string {
	var flags []string
	if d.AllowInInput {
		flags = append(flags, "input")
	}
	if d.AllowRepeat {
		flags = append(flags, "repeat")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}
