package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Statistic available
	SymbolFail    = "✗" // Statistic unavailable
	SymbolWarn    = "!" // Value present but NaN or infinite
	SymbolPending = "○" // Panel toggled off
	SymbolOn      = "●" // Panel toggled on
)
