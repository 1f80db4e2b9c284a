// Package textutil provides text operations that count user-perceived
// characters (grapheme clusters) instead of bytes or runes, so that emoji and
// combining sequences are never split.
package textutil

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	apperrors "github.com/agbru/hprogress/internal/errors"
)

// Ellipsis marks clipped text.
const Ellipsis = "…"

// Length returns the number of grapheme clusters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// PadRight appends copies of pad until s is length graphemes long. Strings
// that are already long enough are returned unchanged. pad must be exactly
// one grapheme; an empty pad defaults to a space.
func PadRight(s string, length int, pad string) (string, error) {
	if length < 0 {
		return "", apperrors.ValidationError{Field: "length", Message: fmt.Sprintf("must be >= 0, got %d", length)}
	}
	if pad == "" {
		pad = " "
	} else if Length(pad) != 1 {
		return "", apperrors.ValidationError{Field: "pad", Message: fmt.Sprintf("must be a single character, got %q", pad)}
	}
	missing := length - Length(s)
	if missing < 1 {
		return s, nil
	}
	return s + strings.Repeat(pad, missing), nil
}

// Substring returns length graphemes of s starting at grapheme start.
func Substring(s string, start, length int) (string, error) {
	total := Length(s)
	if start < 0 || start > total {
		return "", apperrors.ValidationError{Field: "start", Message: fmt.Sprintf("%d is outside [0, %d]", start, total)}
	}
	if length < 0 {
		return "", apperrors.ValidationError{Field: "length", Message: fmt.Sprintf("must be >= 0, got %d", length)}
	}
	if start+length > total {
		return "", apperrors.ValidationError{Field: "length", Message: fmt.Sprintf("start %d plus length %d exceeds %d", start, length, total)}
	}
	return substring(s, start, length), nil
}

// substring assumes the bounds were checked.
func substring(s string, start, length int) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < start+length && g.Next(); i++ {
		if i >= start {
			b.WriteString(g.Str())
		}
	}
	return b.String()
}

// LimitLength clips s to at most max graphemes. With room to spare (max > 12)
// it keeps the first four graphemes and the tail, joined by an ellipsis; with
// some room (max > 5) it keeps the tail behind a leading ellipsis; otherwise it
// keeps only the last max graphemes.
func LimitLength(s string, max int) (string, error) {
	if max < 0 {
		return "", apperrors.ValidationError{Field: "max", Message: fmt.Sprintf("must be >= 0, got %d", max)}
	}
	total := Length(s)
	if total <= max {
		return s, nil
	}
	switch {
	case max > 12:
		tail := max - 5
		return substring(s, 0, 4) + Ellipsis + substring(s, total-tail, tail), nil
	case max > 5:
		return Ellipsis + substring(s, total-max+1, max-1), nil
	default:
		return substring(s, total-max, max), nil
	}
}

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to fit in maxWidth terminal columns, ending with an
// ellipsis when anything was removed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}
