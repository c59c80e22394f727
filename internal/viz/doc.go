// Package viz renders numlab results in the terminal.
//
// Styles are lipgloss definitions shared by the CLI and the TUI. [Plot] and
// [PlotLogError] wrap asciigraph for trajectories and convergence curves, and
// [Sparkline] gives a one-line error trend for narrow layouts.
package viz
