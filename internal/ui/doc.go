// Package ui holds the styled pieces of statoverlay's non-interactive
// command output: status symbols, the semantic color palette and tables.
//
// Colors are ANSI codes so output degrades cleanly on basic terminals:
//
//	ColorSuccess   (green)  - statistic available
//	ColorError     (red)    - statistic unavailable
//	ColorWarning   (yellow) - value present but not finite
//	ColorMuted     (gray)   - secondary detail
//
// The interactive debug window has its own styles in package surface.
package ui
