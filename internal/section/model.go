package section

// Section is one heading-delimited block of a document.
type Section struct {
	ID         int    `json:"id"`
	Source     string `json:"source"`
	Line       int    `json:"line"`
	Title      string `json:"title"`
	Breadcrumb string `json:"breadcrumb"`
	Depth      int    `json:"depth"`
	// ParentID is the ID of the enclosing section, or 0 for a root section.
	ParentID int    `json:"parent_id,omitempty"`
	Body     string `json:"-"`

	Todo bool `json:"todo"`
	WIP  bool `json:"wip"`
	Wait bool `json:"wait"`
	Done bool `json:"done"`
	Dont bool `json:"dont"`

	// Timestamps is sorted ascending and never empty once the section is finalized.
	Timestamps []string `json:"timestamps"`
}

// Has reports whether the status flag for marker is set.
func (s Section) Has(marker Marker) bool {
	switch marker {
	case MarkerTodo:
		return s.Todo
	case MarkerWIP:
		return s.WIP
	case MarkerWait:
		return s.Wait
	case MarkerDone:
		return s.Done
	case MarkerDont:
		return s.Dont
	default:
		return false
	}
}

// Earliest returns the oldest timestamp found in the body.
func (s Section) Earliest() string {
	if len(s.Timestamps) == 0 {
		return SentinelTimestamp
	}
	return s.Timestamps[0]
}

// Latest returns the most recent timestamp found in the body. It is the recency sort key.
func (s Section) Latest() string {
	if len(s.Timestamps) == 0 {
		return SentinelTimestamp
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// Marker is one of the inline workflow states a section body can carry.
type Marker uint8

const (
	// MarkerTodo marks work that still needs doing.
	MarkerTodo Marker = iota
	// MarkerWIP marks work in progress.
	MarkerWIP
	// MarkerWait marks work blocked on someone else.
	MarkerWait
	// MarkerDone marks finished work.
	MarkerDone
	// MarkerDont marks work that was dropped.
	MarkerDont
)

// Markers lists every marker in declaration order.
var Markers = []Marker{MarkerTodo, MarkerWIP, MarkerWait, MarkerDone, MarkerDont}

// String returns the bare marker name, e.g. "TODO".
func (m Marker) String() string {
	switch m {
	case MarkerTodo:
		return "TODO"
	case MarkerWIP:
		return "WIP"
	case MarkerWait:
		return "WAIT"
	case MarkerDone:
		return "DONE"
	case MarkerDont:
		return "DONT"
	default:
		return "UNKNOWN"
	}
}

// Token returns the literal substring searched for in section bodies, e.g. "*TODO*".
func (m Marker) Token() string {
	return "*" + m.String() + "*"
}
