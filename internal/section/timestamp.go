package section

import (
	"errors"
	"fmt"
	"time"
)

const (
	timestampLayout = "(2006/01/02 15:04)"
	compactLayout   = "060102_1504"
)

// ParseTimestamp converts an extracted timestamp into a time. Digits that do not form a real
// date and time fail with ErrInvalidTimestamp.
func ParseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, &TimestampError{Value: value, Err: err}
	}
	return parsed, nil
}

// CompactTimestamp renders a timestamp as YYMMDD_hhmm, e.g. "240713_0438".
func CompactTimestamp(value string) (string, error) {
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return "", err
	}
	return parsed.Format(compactLayout), nil
}

// CompactEarliest renders the section's earliest timestamp in compact form. Errors carry the
// section's source and line.
func (s Section) CompactEarliest() (string, error) {
	compact, err := CompactTimestamp(s.Earliest())
	if err != nil {
		return "", locate(err, s)
	}
	return compact, nil
}

// CheckTimestamps validates every timestamp of every section and reports the first invalid one
// with its location.
func CheckTimestamps(sections []Section) error {
	for _, s := range sections {
		for _, ts := range s.Timestamps {
			if _, err := ParseTimestamp(ts); err != nil {
				return locate(err, s)
			}
		}
	}
	return nil
}

func locate(err error, s Section) error {
	var tsErr *TimestampError
	if errors.As(err, &tsErr) {
		located := *tsErr
		located.Source = s.Source
		located.Line = s.Line
		return &located
	}
	return fmt.Errorf("%s:%d: %w", s.Source, s.Line, err)
}
