package ui

import "github.com/fatih/color"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorWarn   = 179 // amber
	colorError  = 203 // red
)

// Styles renders text for one output stream.
type Styles struct {
	accent, cmd, muted, warn, err *color.Color
}

func ansi256(code int, enabled bool) *color.Color {
	c := color.New(38, 5, color.Attribute(code))
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// NewStyles returns styles that emit color only when enabled is true.
func NewStyles(enabled bool) *Styles {
	return &Styles{
		accent: ansi256(colorAccent, enabled),
		cmd:    ansi256(colorCmd, enabled),
		muted:  ansi256(colorMuted, enabled),
		warn:   ansi256(colorWarn, enabled),
		err:    ansi256(colorError, enabled),
	}
}

// Plain returns styles that never emit escape codes.
func Plain() *Styles {
	return NewStyles(false)
}

func (s *Styles) Accent(v string) string  { return s.accent.Sprint(v) }
func (s *Styles) Command(v string) string { return s.cmd.Sprint(v) }
func (s *Styles) Muted(v string) string   { return s.muted.Sprint(v) }
func (s *Styles) Warn(v string) string    { return s.warn.Sprint(v) }
func (s *Styles) Error(v string) string   { return s.err.Sprint(v) }
