package report

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/faizmokh/mdstatus/internal/section"
)

// Entry is the JSON form of one reported section.
type Entry struct {
	ID         int    `json:"id"`
	ParentID   int    `json:"parent_id,omitempty"`
	Source     string `json:"source"`
	Basename   string `json:"basename"`
	Line       int    `json:"line"`
	Depth      int    `json:"depth"`
	Title      string `json:"title"`
	Breadcrumb string `json:"breadcrumb"`
	ShortTitle string `json:"short_title"`
	Earliest   string `json:"earliest"`
	Latest     string `json:"latest"`
	Created    string `json:"created"`
}

// Category is the JSON form of one category block.
type Category struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Build groups sections into categories, keeping the recency order inside each one.
func Build(sections []section.Section, opts Options) ([]Category, error) {
	categories := make([]Category, 0, len(Categories(opts.ShowClosed)))
	for _, marker := range Categories(opts.ShowClosed) {
		category := Category{Name: marker.String(), Entries: []Entry{}}
		for _, s := range Select(sections, marker) {
			created, err := s.CompactEarliest()
			if err != nil {
				return nil, err
			}
			category.Entries = append(category.Entries, Entry{
				ID:         s.ID,
				ParentID:   s.ParentID,
				Source:     s.Source,
				Basename:   filepath.Base(s.Source),
				Line:       s.Line,
				Depth:      s.Depth,
				Title:      s.Title,
				Breadcrumb: s.Breadcrumb,
				ShortTitle: ShortTitle(s.Breadcrumb),
				Earliest:   s.Earliest(),
				Latest:     s.Latest(),
				Created:    created,
			})
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// WriteJSON renders the categorized digest as indented JSON.
func WriteJSON(w io.Writer, sections []section.Section, opts Options) error {
	categories, err := Build(sections, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(categories); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
