package ui

// ColorAccent returns the accent escape sequence of the active theme.
func ColorAccent() string { return GetCurrentTheme().Accent }

// ColorMuted returns the muted escape sequence of the active theme.
func ColorMuted() string { return GetCurrentTheme().Muted }

// ColorSuccess returns the success escape sequence of the active theme.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the warning escape sequence of the active theme.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the error escape sequence of the active theme.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the bold escape sequence of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape sequence of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// Paint wraps s in color and a reset. With the no-color theme it returns s.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
