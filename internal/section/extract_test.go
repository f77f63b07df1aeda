package section

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractStatusFlagsAreIndependent(t *testing.T) {
	both := Section{Body: "# Task\n*TODO* first\nlater *WIP*\n"}
	Extract(&both)
	if !both.Todo || !both.WIP {
		t.Fatalf("Todo/WIP = %v/%v, want true/true", both.Todo, both.WIP)
	}
	if both.Wait || both.Done || both.Dont {
		t.Fatalf("unexpected flags set: %+v", both)
	}

	neither := Section{Body: "# Task\nTODO without stars, *todo* lowercase\n"}
	Extract(&neither)
	if neither.Todo || neither.WIP {
		t.Fatalf("Todo/WIP = %v/%v, want false/false", neither.Todo, neither.WIP)
	}
}

func TestExtractAllMarkers(t *testing.T) {
	s := Section{Body: "*TODO**WIP* *WAIT* inline*DONE*text *DONT*"}
	Extract(&s)
	for _, marker := range Markers {
		if !s.Has(marker) {
			t.Fatalf("Has(%s) = false, want true", marker)
		}
	}
}

func TestExtractSortsTimestamps(t *testing.T) {
	s := Section{Body: "# (2024/06/01 09:00) later\n(2023/12/31 23:59) earlier\n(2024/01/15 08:30) middle\n"}
	Extract(&s)

	want := []string{"(2023/12/31 23:59)", "(2024/01/15 08:30)", "(2024/06/01 09:00)"}
	if diff := cmp.Diff(want, s.Timestamps); diff != "" {
		t.Fatalf("timestamps mismatch (-want +got):\n%s", diff)
	}
	if s.Earliest() != want[0] {
		t.Fatalf("Earliest() = %q, want %q", s.Earliest(), want[0])
	}
	if s.Latest() != want[2] {
		t.Fatalf("Latest() = %q, want %q", s.Latest(), want[2])
	}
}

func TestExtractIgnoresMalformedTimestamps(t *testing.T) {
	s := Section{Body: "(2024/1/01 00:00) (2024-01-01 00:00) 2024/01/01 00:00 (2024/01/01 0:00)"}
	Extract(&s)

	if diff := cmp.Diff([]string{SentinelTimestamp}, s.Timestamps); diff != "" {
		t.Fatalf("timestamps mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeepsDigitsWithoutCalendarCheck(t *testing.T) {
	s := Section{Body: "(2024/13/40 99:99)"}
	Extract(&s)

	if diff := cmp.Diff([]string{"(2024/13/40 99:99)"}, s.Timestamps); diff != "" {
		t.Fatalf("timestamps mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDefaultsToSentinel(t *testing.T) {
	s := Section{Body: "# Undated\nno timestamps here\n"}
	Extract(&s)

	if len(s.Timestamps) != 1 || s.Timestamps[0] != SentinelTimestamp {
		t.Fatalf("Timestamps = %#v, want [%q]", s.Timestamps, SentinelTimestamp)
	}
	if SentinelTimestamp >= "(2000/01/01 00:01)" {
		t.Fatalf("sentinel %q does not sort before real timestamps", SentinelTimestamp)
	}
}
