// Package cliopts defines the command-line option structs parsed by
// jessevdk/go-flags, grounded in cmd/weaviate/main.go and tools/dev/dev.go
// (both parse a flat struct of `long`/`short`/`default`-tagged fields with
// flags.NewParser(&opts, flags.Default).Parse()).
package cliopts

import (
	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// VerticesOptions is the option struct for "smartifier2 vertices".
type VerticesOptions struct {
	Input               string   `short:"i" long:"input" required:"true" description:"Input vertex file"`
	Output              string   `short:"o" long:"output" required:"true" description:"Output vertex file"`
	SmartGraphAttribute string   `short:"a" long:"smart-graph-attribute" required:"true" description:"Attribute holding/receiving the smart graph attribute value"`
	Type                string   `short:"t" long:"type" default:"csv" choice:"csv" choice:"jsonl" description:"Input/output data format"`
	WriteKey            string   `long:"write-key" default:"true" description:"Whether to write the _key column/attribute"`
	Memory              string   `short:"m" long:"memory" default:"4096" description:"RAM budget, plain number in MiB or a size string like 512MiB"`
	SmartValue          string   `long:"smart-value" description:"Attribute to derive the smart graph attribute from"`
	SmartIndex          int      `long:"smart-index" default:"0" description:"Truncate the smart value to this many bytes"`
	HashSmartValue      string   `long:"hash-smart-value" default:"false" description:"Hash the smart value with SHA-1 before truncation"`
	Separator           string   `short:"s" long:"separator" default:"," description:"CSV column separator"`
	QuoteChar           string   `short:"q" long:"quote-char" default:"\"" description:"CSV quote character"`
	SmartDefault        string   `long:"smart-default" description:"Default smart graph attribute value"`
	RandomizeSmart      string   `long:"randomize-smart" description:"Not implemented"`
	RenameColumn        []string `long:"rename-column" description:"<colnr>:<newname>, can be repeated"`
	KeyValue            string   `long:"key-value" description:"Attribute to take the original key from"`
}

// EdgesOptions is the option struct for "smartifier2 edges".
type EdgesOptions struct {
	Vertices      []string `long:"vertices" description:"<collection>:<path>, can be repeated"`
	Edges         []string `long:"edges" required:"true" description:"<path>:<fromColl>:<toColl>[:colnr:newname...], can be repeated"`
	Type          string   `short:"t" long:"type" default:"csv" choice:"csv" choice:"jsonl"`
	Memory        string   `short:"m" long:"memory" default:"4096"`
	Separator     string   `short:"s" long:"separator" default:","`
	QuoteChar     string   `short:"q" long:"quote-char" default:"\""`
	SmartIndex    int      `long:"smart-index" default:"0"`
	Threads       int      `long:"threads" default:"1"`
	FromAttribute string   `long:"from-attribute" default:"_from"`
	ToAttribute   string   `long:"to-attribute" default:"_to"`
}

// ParseMemoryBytes parses the --memory flag. A bare non-negative integer
// is interpreted as MiB, for compatibility with the original tool;
// anything else is parsed as a docker/go-units size string (e.g.
// "512MiB", "4GiB").
func ParseMemoryBytes(s string) (int64, error) {
	if isPlainDigits(s) {
		mib, err := units.RAMInBytes(s + "MiB")
		if err != nil {
			return 0, errors.Wrapf(err, "parse --memory %q", s)
		}
		return mib, nil
	}
	b, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse --memory %q", s)
	}
	return b, nil
}

func isPlainDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseBool mirrors the original's ad-hoc "true"/"false" string booleans
// used for --write-key, --hash-smart-value, etc.
func ParseBool(s string) bool {
	return s == "true" || s == "1" || s == "on"
}

func sepOrDefault(s string, def byte) byte {
	if s == "" {
		return def
	}
	return s[0]
}

// SeparatorByte returns the first byte of the --separator value, or ','.
func (o VerticesOptions) SeparatorByte() byte { return sepOrDefault(o.Separator, ',') }

// QuoteByte returns the first byte of the --quote-char value, or '"'.
func (o VerticesOptions) QuoteByte() byte { return sepOrDefault(o.QuoteChar, '"') }

// SeparatorByte returns the first byte of the --separator value, or ','.
func (o EdgesOptions) SeparatorByte() byte { return sepOrDefault(o.Separator, ',') }

// QuoteByte returns the first byte of the --quote-char value, or '"'.
func (o EdgesOptions) QuoteByte() byte { return sepOrDefault(o.QuoteChar, '"') }
