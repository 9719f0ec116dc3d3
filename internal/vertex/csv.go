package vertex

import (
	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/arangodb-helper/graphutils/internal/logging"
)

// CSVTransformer rewrites one CSV vertex file, line by line, after its
// header has been parsed and (if necessary) extended with the smart
// graph attribute and/or _key columns.
type CSVTransformer struct {
	opts Options
	sep  byte
	quo  byte

	ncols         int
	smartAttrPos  int
	smartValuePos int // -1 if not configured/found
	keyPos        int // -1 when WriteKey is false: the _key column is then neither touched nor created
	keyValuePos   int // -1 if --key-value not set or not found

	logger logging.Logger
}

// NewCSVHeader applies --rename-column renames to header, then locates
// or appends the smart-graph-attribute and _key columns (and the
// --key-value column, if any), returning the rewritten header and a
// ready-to-use transformer. fileName is used only for log messages.
func NewCSVHeader(opts Options, sep, quo byte, header []string, renames map[int]string, fileName string, logger logging.Logger) ([]string, *CSVTransformer) {
	cols := append([]string(nil), header...)
	for idx, name := range renames {
		if idx >= 0 && idx < len(cols) {
			cols[idx] = name
		}
	}

	if len(cols) == 1 {
		logger.Warnf("file %s: found only one column in header, did you specify the right separator character?", fileName)
	}

	smartAttrPos := csvcodec.FindColumn(cols, opts.SmartAttr)
	if smartAttrPos < 0 {
		smartAttrPos = len(cols)
		cols = append(cols, opts.SmartAttr)
	}

	smartValuePos := -1
	if opts.SmartValue != "" {
		smartValuePos = csvcodec.FindColumn(cols, opts.SmartValue)
		if smartValuePos < 0 {
			logger.Warnf("file %s: could not find column for smart value %q, ignoring", fileName, opts.SmartValue)
		}
	}

	keyPos := -1
	if opts.WriteKey {
		keyPos = csvcodec.FindColumn(cols, "_key")
		if keyPos < 0 {
			keyPos = len(cols)
			cols = append(cols, "_key")
		}
	}

	keyValuePos := -1
	if opts.KeyValue != "" {
		keyValuePos = csvcodec.FindColumn(cols, opts.KeyValue)
		if keyValuePos < 0 && opts.WriteKey {
			logger.Warnf("file %s: could not find column for key value %q, ignoring", fileName, opts.KeyValue)
		}
	}

	t := &CSVTransformer{
		opts:          opts,
		sep:           sep,
		quo:           quo,
		ncols:         len(cols),
		smartAttrPos:  smartAttrPos,
		smartValuePos: smartValuePos,
		keyPos:        keyPos,
		keyValuePos:   keyValuePos,
		logger:        logger,
	}
	return cols, t
}

// TransformLine rewrites one CSV data line and returns the rewritten
// line (without trailing newline). parts holds each field in its
// original on-disk encoding (verbatim, still quoted where the source
// quoted it); only the smart-attribute and key slots are decoded,
// rebuilt and re-encoded via Quote. Untouched fields are passed through
// unchanged, exactly as the line was read, rather than being normalized
// by an unquote/quote round trip.
func (t *CSVTransformer) TransformLine(line string, lineNo int64) (string, error) {
	parts := csvcodec.Split(line, t.sep, t.quo)
	for len(parts) < t.ncols {
		parts = append(parts, "")
	}

	var att string
	if t.smartValuePos >= 0 {
		att = csvcodec.Unquote(parts[t.smartValuePos], t.quo)
		att = applyHashAndIndex(att, t.opts.HashSmartValue, t.opts.SmartIndex)
		if att == "" && t.opts.SmartDefault != "" {
			att = t.opts.SmartDefault
		}
		parts[t.smartAttrPos] = csvcodec.Quote(att, t.quo)
	} else {
		att = csvcodec.Unquote(parts[t.smartAttrPos], t.quo)
		if att == "" && t.opts.SmartDefault != "" {
			att = t.opts.SmartDefault
			parts[t.smartAttrPos] = csvcodec.Quote(att, t.quo)
		}
	}

	if t.keyPos < 0 {
		return csvcodec.JoinRaw(parts, t.sep), nil
	}

	var orig string
	if t.keyValuePos >= 0 {
		orig = csvcodec.Unquote(parts[t.keyValuePos], t.quo)
	} else {
		orig = csvcodec.Unquote(parts[t.keyPos], t.quo)
	}
	newKey := rewriteKey(att, orig, lineNo, t.logger)
	parts[t.keyPos] = csvcodec.Quote(newKey, t.quo)

	return csvcodec.JoinRaw(parts, t.sep), nil
}

// HeaderLine serializes a header row.
func HeaderLine(cols []string, sep, quo byte) string {
	return csvcodec.JoinRow(cols, sep, quo)
}
