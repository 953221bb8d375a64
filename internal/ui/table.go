package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is focused, so the first row must not look selected.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string. Columns with a
// zero width are sized to their widest cell.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	sized := make([]TableColumn, len(columns))
	copy(sized, columns)
	for i := range sized {
		if sized[i].Width > 0 {
			continue
		}
		w := lipgloss.Width(sized[i].Title)
		for _, row := range rows {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}
		sized[i].Width = w
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(sized, tableRows)
	return t.View()
}

// StatStatus classifies one raw statistic.
type StatStatus string

const (
	StatOK        StatStatus = "ok"
	StatMissing   StatStatus = "missing"
	StatNonFinite StatStatus = "nonfinite"
)

// StatTableRow represents a row in the raw statistics table.
type StatTableRow struct {
	Status StatStatus
	Source string
	Stat   string
	Kind   string // "int", "number", "text" or "list"
	Value  string
}

// RenderStatTable renders raw statistics grouped by source. The source name
// is printed only on the first row of each group.
func RenderStatTable(rows []StatTableRow) string {
	if len(rows) == 0 {
		return "No statistics registered"
	}

	srcWidth, statWidth, kindWidth := len("SOURCE"), len("STAT"), len("KIND")
	for _, row := range rows {
		srcWidth = max(srcWidth, lipgloss.Width(row.Source))
		statWidth = max(statWidth, lipgloss.Width(row.Stat))
		kindWidth = max(kindWidth, lipgloss.Width(row.Kind))
	}
	srcWidth += 2
	statWidth += 2
	kindWidth += 2

	headerStyle := HeadingStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	var b strings.Builder
	header := "  " + padRight("", 3) + padRight("SOURCE", srcWidth) +
		padRight("STAT", statWidth) + padRight("KIND", kindWidth) + "VALUE"
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	prev := ""
	for _, row := range rows {
		var icon, value string
		switch row.Status {
		case StatOK:
			icon = SuccessStyle.Render(SymbolSuccess)
			value = row.Value
		case StatNonFinite:
			icon = WarningStyle.Render(SymbolWarn)
			value = WarningStyle.Render(row.Value)
		default:
			icon = ErrorStyle.Render(SymbolFail)
			value = MutedStyle.Render(row.Value)
		}

		source := row.Source
		if source == prev {
			source = ""
		}
		prev = row.Source

		b.WriteString("  " + padRight(icon, 3) +
			padRight(source, srcWidth) +
			padRight(row.Stat, statWidth) +
			padRight(MutedStyle.Render(row.Kind), kindWidth) +
			value + "\n")
	}
	return b.String()
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
