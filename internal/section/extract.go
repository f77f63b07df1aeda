package section

import (
	"regexp"
	"slices"
	"strings"
)

// SentinelTimestamp stands in for sections without any timestamp. It sorts before every real one.
const SentinelTimestamp = "(2000/01/01 00:00)"

// TimestampPattern matches inline timestamps such as "(2024/07/13 04:38)". It checks the digit
// layout only; calendar validity is left to ParseTimestamp.
var TimestampPattern = regexp.MustCompile(`\(\d{4}/\d{2}/\d{2} \d{2}:\d{2}\)`)

// Extract sets the status flags and timestamps of a section from its body. It runs once, after
// the body is complete.
func Extract(s *Section) {
	s.Todo = strings.Contains(s.Body, MarkerTodo.Token())
	s.WIP = strings.Contains(s.Body, MarkerWIP.Token())
	s.Wait = strings.Contains(s.Body, MarkerWait.Token())
	s.Done = strings.Contains(s.Body, MarkerDone.Token())
	s.Dont = strings.Contains(s.Body, MarkerDont.Token())

	timestamps := TimestampPattern.FindAllString(s.Body, -1)
	// Zero-padded fixed-width fields make lexical order chronological.
	slices.Sort(timestamps)
	if len(timestamps) == 0 {
		timestamps = []string{SentinelTimestamp}
	}
	s.Timestamps = timestamps
}
