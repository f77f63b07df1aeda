package section

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxDepth is the deepest heading level recognized.
const MaxDepth = 6

// Heading is a line classified as a section boundary.
type Heading struct {
	Depth int
	Title string
}

// The separator accepts any Unicode white space, not only ASCII, so "#　見出し" is a heading.
var headingPattern = regexp.MustCompile(fmt.Sprintf(`^(#{1,%d})[\s\v\p{Z}\x{85}]+(.*)`, MaxDepth))

// ScanHeading classifies a single line. A heading is 1 to MaxDepth '#' characters at the start of
// the line, followed by white space and the title. Deeper marker runs never qualify.
func ScanHeading(line string) (Heading, bool) {
	matches := headingPattern.FindStringSubmatch(line)
	if matches == nil {
		return Heading{}, false
	}
	return Heading{
		Depth: len(matches[1]),
		Title: strings.TrimSpace(matches[2]),
	}, true
}
