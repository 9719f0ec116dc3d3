// Package dataformat names the two on-disk record formats the tool
// understands, selected by the --type option (spec §3, §6).
package dataformat

import "github.com/pkg/errors"

// Format is one of CSV or JSONL.
type Format int

const (
	CSV Format = iota
	JSONL
)

func (f Format) String() string {
	if f == JSONL {
		return "jsonl"
	}
	return "csv"
}

// Parse maps a --type option value to a Format. An empty string means
// CSV, the default.
func Parse(s string) (Format, error) {
	switch s {
	case "", "csv", "CSV":
		return CSV, nil
	case "jsonl", "JSONL":
		return JSONL, nil
	default:
		return CSV, errors.Errorf("unknown data format %q, want %q or %q", s, "csv", "jsonl")
	}
}
