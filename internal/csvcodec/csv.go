// Package csvcodec implements the minimal CSV splitting/quoting rules
// required by the smart-graph transform. It deliberately does not follow
// RFC 4180: quoting is asymmetric (see Quote) and Unquote discards text
// outside the quoted region rather than rejecting it. This reproduces the
// original tool's on-disk format bit-for-bit, including its known
// round-trip ambiguity for fields that contain the separator but not the
// quote character.
package csvcodec

import "strings"

// Split scans line left to right with a two-state (outside-quote /
// inside-quote) machine. Outside a quote, an unescaped sep ends the
// current field; quo enters the quoted state. Inside a quoted region, a
// doubled quo is a literal quote character, a lone quo exits the quoted
// state. Returned fields retain their surrounding quotes verbatim; use
// Unquote to strip them.
func Split(line string, sep, quo byte) []string {
	fields := make([]string, 0, strings.Count(line, string(sep))+1)
	start := 0
	inQuote := false
	i := 0
	for i < len(line) {
		c := line[i]
		if !inQuote {
			if c == quo {
				inQuote = true
				i++
				continue
			}
			if c == sep {
				fields = append(fields, line[start:i])
				i++
				start = i
				continue
			}
			i++
		} else {
			if c == quo {
				if i+1 < len(line) && line[i+1] == quo {
					i += 2
					continue
				}
				inQuote = false
				i++
				continue
			}
			i++
		}
	}
	fields = append(fields, line[start:])
	return fields
}

// Unquote strips the quoting applied by Quote. If s contains no quo byte
// it is returned unchanged. Otherwise parsing starts at the first quo,
// collapses doubled quo into one literal quo while inside the quoted
// region, and resumes scanning for a new quoted region once the current
// one closes. Bytes before the first quo, and after a closing quo that is
// not followed by another opening quo, are discarded. This matches the
// original implementation; it is not a conventional CSV parser and can
// mishandle a field that is only partially quoted.
func Unquote(s string, quo byte) string {
	pos := strings.IndexByte(s, quo)
	if pos < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pos++ // first byte after the opening quote
	inQuote := true
	for pos < len(s) {
		c := s[pos]
		if inQuote {
			if c == quo {
				if pos+1 < len(s) && s[pos+1] == quo {
					b.WriteByte(quo)
					pos += 2
					continue
				}
				inQuote = false
			} else {
				b.WriteByte(c)
			}
		} else {
			if c == quo {
				inQuote = true
			}
		}
		pos++
	}
	return b.String()
}

// Quote wraps s in quo...quo and doubles every interior quo byte, but only
// if s contains quo at all; otherwise s is returned unchanged. This is the
// deliberate minimal-quoting policy documented in spec §4.1: a field that
// contains sep but no quo is emitted unquoted and round-trips ambiguously.
func Quote(s string, quo byte) string {
	pos := strings.IndexByte(s, quo)
	if pos < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quo)
	for i := 0; i < len(s); i++ {
		if s[i] == quo {
			b.WriteByte(quo)
			b.WriteByte(quo)
		} else {
			b.WriteByte(s[i])
		}
	}
	b.WriteByte(quo)
	return b.String()
}

// FindColumn returns the index of header in cols, or -1 if absent.
func FindColumn(cols []string, header string) int {
	for i, c := range cols {
		if c == header {
			return i
		}
	}
	return -1
}

// JoinRow serializes fields into one CSV line (without the trailing
// newline), quoting each field that contains quo. Use this when fields
// holds plain, decoded values (e.g. a header's column names).
func JoinRow(fields []string, sep, quo byte) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(Quote(f, quo))
	}
	return b.String()
}

// JoinRaw concatenates fields with sep, performing no quoting of its
// own. Use this when fields is a row produced by Split and mutated
// in place: untouched entries are already in their original on-disk
// form and must be emitted verbatim, while entries the caller changed
// must already have been passed through Quote before being stored.
func JoinRaw(fields []string, sep byte) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(f)
	}
	return b.String()
}
