package edge

import (
	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/xlat"
	"github.com/pkg/errors"
)

// CSVTransformer rewrites one CSV edge file, line by line, once its
// header has been located.
type CSVTransformer struct {
	opts  Options
	table *xlat.Table
	sep   byte
	quo   byte

	ncols   int
	keyPos  int // -1 if the file has no _key column; none is added then
	fromPos int
	toPos   int

	logger logging.Logger
}

// NewCSVHeader applies column renames to header and locates _key,
// _from and _to. It errors if either endpoint column is missing, as an
// edge file with no endpoints cannot be processed.
func NewCSVHeader(opts Options, table *xlat.Table, sep, quo byte, header []string, renames map[int]string, fileName string, logger logging.Logger) ([]string, *CSVTransformer, error) {
	cols := append([]string(nil), header...)
	for idx, name := range renames {
		if idx >= 0 && idx < len(cols) {
			cols[idx] = name
		}
	}

	if len(cols) == 1 {
		logger.Warnf("file %s: found only one column in header, did you specify the right separator character?", fileName)
	}

	fromPos := csvcodec.FindColumn(cols, opts.fromFieldName())
	toPos := csvcodec.FindColumn(cols, opts.toFieldName())
	if fromPos < 0 || toPos < 0 {
		return nil, nil, errors.Errorf("file %s: did not find %q or %q column", fileName, opts.fromFieldName(), opts.toFieldName())
	}
	keyPos := csvcodec.FindColumn(cols, "_key")

	t := &CSVTransformer{
		opts:    opts,
		table:   table,
		sep:     sep,
		quo:     quo,
		ncols:   len(cols),
		keyPos:  keyPos,
		fromPos: fromPos,
		toPos:   toPos,
		logger:  logger,
	}
	return cols, t, nil
}

// TransformLine rewrites one CSV data line and returns the rewritten
// line (without trailing newline). Untouched fields are passed through
// verbatim, in their original on-disk encoding.
func (t *CSVTransformer) TransformLine(line string, lineNo int64) (string, error) {
	parts := csvcodec.Split(line, t.sep, t.quo)
	for len(parts) < t.ncols {
		parts = append(parts, "")
	}

	fromRaw := csvcodec.Unquote(parts[t.fromPos], t.quo)
	newFrom, fromAttr := translateEndpoint(t.table, fromRaw, t.opts.FromVertColl, t.opts.SmartIndex)
	if newFrom != fromRaw {
		parts[t.fromPos] = csvcodec.Quote(newFrom, t.quo)
	}

	toRaw := csvcodec.Unquote(parts[t.toPos], t.quo)
	newTo, toAttr := translateEndpoint(t.table, toRaw, t.opts.ToVertColl, t.opts.SmartIndex)
	if newTo != toRaw {
		parts[t.toPos] = csvcodec.Quote(newTo, t.quo)
	}

	if t.keyPos >= 0 {
		orig := csvcodec.Unquote(parts[t.keyPos], t.quo)
		if newKey, changed := rewriteEdgeKey(fromAttr, toAttr, orig); changed {
			parts[t.keyPos] = csvcodec.Quote(newKey, t.quo)
		}
	}

	return csvcodec.JoinRaw(parts, t.sep), nil
}

// HeaderLine serializes a header row.
func HeaderLine(cols []string, sep, quo byte) string {
	return csvcodec.JoinRow(cols, sep, quo)
}
