// Package convert runs the statement conversion pipeline: split, quirk
// fixups, translation, classification, and batch orchestration over many
// inputs.
package convert

import (
	"fmt"
)

// Status classifies the outcome of converting one statement. Every statement
// of every job ends in exactly one of the three states.
type Status int

const (
	// StatusConverted means the output differs meaningfully from the input.
	StatusConverted Status = iota
	// StatusAlreadyCompatible means the input was valid target-dialect SQL
	// and came through semantically unchanged.
	StatusAlreadyCompatible
	// StatusError means the statement failed to parse or render; the input
	// is preserved and a diagnostic recorded.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusAlreadyCompatible:
		return "already-compatible"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of converting one statement.
type Result struct {
	// Index is the statement's 1-based ordinal within its job.
	Index int `json:"index"`
	// Status is the conversion outcome.
	Status Status `json:"status"`
	// Original is the statement text as it appeared in the input, without
	// leading or trailing trivia.
	Original string `json:"original"`
	// Output is the converted statement. Empty when Status is StatusError.
	Output string `json:"output,omitempty"`
	// Diagnostic is the failure description when Status is StatusError.
	Diagnostic string `json:"diagnostic,omitempty"`
	// Candidate is the cleaned text the translator last attempted, recorded
	// on failure so the operator can finish the conversion by hand.
	Candidate string `json:"candidate,omitempty"`
}

// JobResult collects the per-statement results of one input.
type JobResult struct {
	// Name identifies the input, usually a file name.
	Name string `json:"name"`
	// Results holds one entry per statement, in input order.
	Results []Result `json:"results"`
	// Err is set when the job failed before any statement could be
	// processed, e.g. an unreadable input. Statement-level failures are
	// recorded per Result instead.
	Err error `json:"-"`
}

// Counts returns the number of results per status.
func (j JobResult) Counts() (converted, compatible, failed int) {
	for _, r := range j.Results {
		switch r.Status {
		case StatusConverted:
			converted++
		case StatusAlreadyCompatible:
			compatible++
		case StatusError:
			failed++
		}
	}
	return converted, compatible, failed
}

// ByStatus returns the job's results with the given status, in input order.
func (j JobResult) ByStatus(s Status) []Result {
	var out []Result
	for _, r := range j.Results {
		if r.Status == s {
			out = append(out, r)
		}
	}
	return out
}
