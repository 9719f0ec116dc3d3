package edge

import (
	"github.com/arangodb-helper/graphutils/internal/jsonrecord"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/xlat"
	"github.com/pkg/errors"
)

// JSONLTransformer rewrites one JSONL edge line at a time.
type JSONLTransformer struct {
	opts   Options
	table  *xlat.Table
	logger logging.Logger
}

// NewJSONLTransformer builds a JSONL edge transformer.
func NewJSONLTransformer(opts Options, table *xlat.Table, logger logging.Logger) *JSONLTransformer {
	return &JSONLTransformer{opts: opts, table: table, logger: logger}
}

// TransformLine rewrites one JSONL edge line and returns the rewritten
// line, including its trailing newline.
func (t *JSONLTransformer) TransformLine(line []byte, lineNo int64) ([]byte, error) {
	rec, err := jsonrecord.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d: parse JSONL edge record", lineNo)
	}

	fromRaw, fromAttr, haveFrom := t.resolveEndpoint(rec, t.opts.fromFieldName(), t.opts.FromVertColl, lineNo)
	toRaw, toAttr, haveTo := t.resolveEndpoint(rec, t.opts.toFieldName(), t.opts.ToVertColl, lineNo)

	// _key is only considered at all when both endpoints resolved to a
	// smart graph attribute; a resolution failure on either side drops
	// the _key field from the output entirely, matching the original.
	var newKey string
	haveNewKey, haveRawKey := false, false
	var rawKey jsonrecord.Field
	if fromAttr != "" && toAttr != "" {
		if keyField, ok := rec.Get("_key"); ok && keyField.IsString() {
			orig, err := keyField.String()
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: decode _key field", lineNo)
			}
			if nk, changed := rewriteEdgeKey(fromAttr, toAttr, orig); changed {
				newKey = nk
				haveNewKey = true
			} else {
				rawKey = keyField
				haveRawKey = true
			}
		}
	}

	b := jsonrecord.NewBuilder()
	if haveNewKey {
		b.WriteStringField("_key", newKey)
	} else if haveRawKey {
		b.WriteRawField("_key", rawKey.Raw)
	}
	if haveFrom {
		b.WriteStringField("_from", fromRaw)
	}
	if haveTo {
		b.WriteStringField("_to", toRaw)
	}
	for _, f := range rec.Fields() {
		switch f.Key {
		case "_key", "_from", "_to":
			continue
		}
		b.WriteRawField(f.Key, f.Raw)
	}
	return b.Bytes(), nil
}

// resolveEndpoint mirrors the original tool's per-endpoint "translate"
// closure for JSONL: a non-string endpoint field is reported and treated
// as absent, matching the original's silent drop of that endpoint (and,
// transitively, of _key rewriting and the field itself in the output).
func (t *JSONLTransformer) resolveEndpoint(rec *jsonrecord.Record, fieldName, vertColl string, lineNo int64) (newValue, attr string, ok bool) {
	f, present := rec.Get(fieldName)
	if !present || !f.IsString() {
		t.logger.Warnf("line %d: found %q entry which is not a string", lineNo, fieldName)
		return "", "", false
	}
	raw, err := f.String()
	if err != nil {
		t.logger.Warnf("line %d: could not decode %q field: %v", lineNo, fieldName, err)
		return "", "", false
	}
	newValue, attr = translateEndpoint(t.table, raw, vertColl, t.opts.SmartIndex)
	return newValue, attr, true
}
