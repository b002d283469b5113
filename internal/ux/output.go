// Package ux prints short styled diagnostics on stderr. Stdout is left to
// payloads and listings.
package ux

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Stderr is where diagnostics go. Tests swap it for a buffer.
var Stderr io.Writer = os.Stderr

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// styled reports whether diagnostics should carry ANSI styling.
func styled() bool {
	f, ok := Stderr.(*os.File)
	return ok && IsTerminal(f)
}

// Render applies style when stderr is a terminal.
func Render(style lipgloss.Style, s string) string {
	if !styled() {
		return s
	}
	return style.Render(s)
}

func printf(style lipgloss.Style, prefix, format string, args ...any) {
	fmt.Fprintln(Stderr, Render(style, prefix+fmt.Sprintf(format, args...)))
}

// Error prints an "error:" line.
func Error(format string, args ...any) {
	printf(ErrorStyle, "error: ", format, args...)
}

// Warn prints a "warning:" line.
func Warn(format string, args ...any) {
	printf(WarnStyle, "warning: ", format, args...)
}

// Info prints a plain informational line.
func Info(format string, args ...any) {
	printf(InfoStyle, "", format, args...)
}

// Success prints a check-marked line.
func Success(format string, args ...any) {
	printf(SuccessStyle, "✓ ", format, args...)
}

// Failure prints a cross-marked line.
func Failure(format string, args ...any) {
	printf(ErrorStyle, "✗ ", format, args...)
}

// Duration formats d as "1m 05s" above a minute and "1.2s" below.
func Duration(d time.Duration) string {
	if d >= time.Minute {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
