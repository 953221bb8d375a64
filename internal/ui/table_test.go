package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Key", Width: 20},
		{Title: "Value", Width: 10},
	}
	rows := []table.Row{
		{"player_name", "jeb"},
		{"fast_mode", "false"},
	}

	view := NewTable(columns, rows).View()

	assert.Contains(t, view, "Key")
	assert.Contains(t, view, "Value")
	assert.Contains(t, view, "player_name")
	assert.Contains(t, view, "fast_mode")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "Key", Width: 20}}, []table.Row{}).View()
	assert.Contains(t, view, "Key")
}

func TestRenderSimpleTable(t *testing.T) {
	tests := []struct {
		name    string
		columns []TableColumn
		rows    [][]string
		want    []string
	}{
		{
			name:    "fixed widths",
			columns: []TableColumn{{Title: "Key", Width: 16}, {Title: "Value", Width: 8}},
			rows:    [][]string{{"sample_interval", "200ms"}},
			want:    []string{"Key", "Value", "sample_interval", "200ms"},
		},
		{
			name:    "auto widths fit the widest cell",
			columns: []TableColumn{{Title: "Key"}, {Title: "Value"}},
			rows:    [][]string{{"panels.peer_rates", "true"}, {"window.cell_height", "16"}},
			want:    []string{"panels.peer_rates", "window.cell_height", "true", "16"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSimpleTable(tt.columns, tt.rows)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "Key"}}, nil))
}

func TestRenderStatTable(t *testing.T) {
	rows := []StatTableRow{
		{Status: StatOK, Source: "timesync", Stat: "WarpRate", Kind: "number", Value: "1.5"},
		{Status: StatMissing, Source: "timesync", Stat: "ServerLag", Kind: "-", Value: "n/a"},
		{Status: StatNonFinite, Source: "network", Stat: "LastSendTime", Kind: "number", Value: "NaN"},
	}

	out := RenderStatTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// header, border, three rows
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, lines[0], "VALUE")

	assert.Contains(t, lines[2], SymbolSuccess)
	assert.Contains(t, lines[2], "timesync")
	assert.Contains(t, lines[2], "1.5")

	assert.Contains(t, lines[3], SymbolFail)
	assert.NotContains(t, lines[3], "timesync", "source is only named on the first row of a group")
	assert.Contains(t, lines[3], "n/a")

	assert.Contains(t, lines[4], SymbolWarn)
	assert.Contains(t, lines[4], "network")
}

func TestRenderStatTable_Empty(t *testing.T) {
	assert.Equal(t, "No statistics registered", RenderStatTable(nil))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 2, "abcd"},
		{"", 3, "   "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, padRight(tt.in, tt.width))
	}
}
