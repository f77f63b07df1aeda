package section

import (
	"slices"
	"strings"
)

// BreadcrumbSeparator joins ancestor titles in a breadcrumb.
const BreadcrumbSeparator = " / "

// Builder turns documents into finalized sections. A single Builder numbers sections across every
// document it builds, so IDs stay unique for the whole run.
type Builder struct {
	nextID int
}

// NewBuilder returns a builder whose first section gets ID 1.
func NewBuilder() *Builder {
	return &Builder{nextID: 1}
}

// Build scans content line by line and returns its sections in document order. Lines before the
// first heading belong to no section and are dropped.
func (b *Builder) Build(source, content string) []Section {
	var (
		arena   []Section
		parents []int // arena index of each section's parent, -1 for roots
		body    strings.Builder
	)

	finalize := func() {
		if len(arena) == 0 {
			return
		}
		current := &arena[len(arena)-1]
		current.Body = body.String()
		Extract(current)
		body.Reset()
	}

	for index, line := range splitLines(content) {
		if heading, ok := ScanHeading(line); ok {
			finalize()

			parent := -1
			if len(arena) > 0 {
				parent = enclosing(arena, parents, len(arena)-1, heading.Depth)
			}

			sec := Section{
				ID:     b.nextID,
				Source: source,
				Line:   index + 1,
				Title:  heading.Title,
				Depth:  heading.Depth,
			}
			if parent >= 0 {
				sec.ParentID = arena[parent].ID
			}
			arena = append(arena, sec)
			parents = append(parents, parent)
			arena[len(arena)-1].Breadcrumb = breadcrumb(arena, parents, len(arena)-1)
			b.nextID++
		}

		if len(arena) > 0 {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	finalize()

	return arena
}

// enclosing walks parent links from the section at index up to the nearest one shallower than
// depth. It returns -1 when the new heading is a root.
func enclosing(arena []Section, parents []int, index, depth int) int {
	for index >= 0 && arena[index].Depth >= depth {
		index = parents[index]
	}
	return index
}

func breadcrumb(arena []Section, parents []int, index int) string {
	var titles []string
	for ; index >= 0; index = parents[index] {
		titles = append(titles, arena[index].Title)
	}
	slices.Reverse(titles)
	return strings.Join(titles, BreadcrumbSeparator)
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	// Remove the trailing empty element produced by Split when the input ends with a newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
