// Package report renders the recency-ordered section digest as categorized listings.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/faizmokh/mdstatus/internal/section"
)

// Options controls which categories are listed and the layout of each line.
type Options struct {
	// ShowClosed adds the DONT and DONE categories after the open ones.
	ShowClosed bool
	// BasenameWidth truncates the source basename to this many characters; 0 disables it.
	BasenameWidth int
	// LineWidth left-aligns the line number in a column this wide; 0 disables padding.
	LineWidth int
	// Color decides whether category headers carry terminal styling.
	Color ColorMode
}

// ColorMode selects when headers are styled.
type ColorMode int

const (
	// ColorAuto styles headers only on a color terminal, and never when NO_COLOR is set.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ErrInvalidColorMode is returned for an unknown color mode name.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ParseColorMode maps "auto", "always" or "never" to a ColorMode.
func ParseColorMode(name string) (ColorMode, error) {
	switch name {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w %q (want auto, always or never)", ErrInvalidColorMode, name)
	}
}

// Categories returns the markers to report, in output order.
func Categories(showClosed bool) []section.Marker {
	categories := []section.Marker{section.MarkerWait, section.MarkerWIP, section.MarkerTodo}
	if showClosed {
		categories = append(categories, section.MarkerDont, section.MarkerDone)
	}
	return categories
}

// Select returns the sections carrying marker, keeping their order.
func Select(sections []section.Section, marker section.Marker) []section.Section {
	var selected []section.Section
	for _, s := range sections {
		if s.Has(marker) {
			selected = append(selected, s)
		}
	}
	return selected
}

var (
	timestampStrip = regexp.MustCompile(section.TimestampPattern.String() + ` ?`)
	markerStrip    = regexp.MustCompile(`\*(TODO|WIP|WAIT|DONE|DONT)\* ?`)
)

// ShortTitle removes every timestamp and status marker, each with one optional trailing space,
// from a breadcrumb. Removal repeats until nothing matches, so ShortTitle(ShortTitle(x)) ==
// ShortTitle(x).
func ShortTitle(breadcrumb string) string {
	for {
		stripped := timestampStrip.ReplaceAllString(breadcrumb, "")
		stripped = markerStrip.ReplaceAllString(stripped, "")
		if stripped == breadcrumb {
			return stripped
		}
		breadcrumb = stripped
	}
}

// Line formats one summary line, without indentation or newline:
// "<basename>:L<line>: <earliest-compact> <short-title>".
func Line(s section.Section, opts Options) (string, error) {
	created, err := s.CompactEarliest()
	if err != nil {
		return "", err
	}

	base := filepath.Base(s.Source)
	if opts.BasenameWidth > 0 {
		base = fmt.Sprintf("%.*s", opts.BasenameWidth, base)
	}

	return fmt.Sprintf("%s:L%-*d: %s %s", base, opts.LineWidth, s.Line, created, ShortTitle(s.Breadcrumb)), nil
}

// Write renders every category block to w. Nothing is written when any line fails to format.
func Write(w io.Writer, sections []section.Section, opts Options) error {
	renderer := newRenderer(w, opts.Color)

	var buf bytes.Buffer
	for i, marker := range Categories(opts.ShowClosed) {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(headerStyle(renderer, marker).Render(marker.String() + " items:"))
		buf.WriteByte('\n')

		for _, s := range Select(sections, marker) {
			line, err := Line(s, opts)
			if err != nil {
				return err
			}
			buf.WriteString("  ")
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Text renders the report into a string without terminal styling.
func Text(sections []section.Section, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, sections, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HeaderColor is the terminal color of each category header.
func HeaderColor(marker section.Marker) lipgloss.Color {
	switch marker {
	case section.MarkerWait:
		return lipgloss.Color("3")
	case section.MarkerWIP:
		return lipgloss.Color("6")
	case section.MarkerTodo:
		return lipgloss.Color("1")
	case section.MarkerDone:
		return lipgloss.Color("2")
	default:
		return lipgloss.Color("8")
	}
}

func newRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	switch {
	case mode == ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case mode == ColorNever, os.Getenv("NO_COLOR") != "":
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

func headerStyle(r *lipgloss.Renderer, marker section.Marker) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(HeaderColor(marker))
}
