// Package ui holds the color themes shared by the plain-text and TUI
// displays. It honors the NO_COLOR convention and the --no-color flag.
package ui
