package vertex

import (
	"github.com/arangodb-helper/graphutils/internal/jsonrecord"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/pkg/errors"
)

// JSONLTransformer rewrites one JSONL vertex line at a time.
type JSONLTransformer struct {
	opts   Options
	logger logging.Logger
}

// NewJSONLTransformer builds a JSONL vertex transformer.
func NewJSONLTransformer(opts Options, logger logging.Logger) *JSONLTransformer {
	return &JSONLTransformer{opts: opts, logger: logger}
}

// smartToString implements spec §4.5 point 4: a present string field is
// used as-is; a missing field or JSON null falls back to --smart-default;
// a non-string scalar (bool/number) is stringified with a warning; an
// array or object cannot be converted and yields "" with a warning.
func (t *JSONLTransformer) smartToString(f jsonrecord.Field, present bool, lineNo int64) string {
	if !present || f.IsNull() {
		return t.opts.SmartDefault
	}
	if f.IsString() {
		s, err := f.String()
		if err != nil {
			t.logger.Warnf("line %d: could not decode string field: %v", lineNo, err)
			return t.opts.SmartDefault
		}
		return s
	}
	if f.IsScalar() {
		t.logger.Warnf("line %d: vertex has non-string smart graph attribute value %s, converting to string",
			lineNo, f.ScalarText())
		return f.ScalarText()
	}
	t.logger.Warnf("line %d: vertex has a complex-typed smart graph attribute value, cannot convert, using empty string",
		lineNo)
	return ""
}

// TransformLine rewrites one JSONL vertex line and returns the rewritten
// line, including its trailing newline.
func (t *JSONLTransformer) TransformLine(line []byte, lineNo int64) ([]byte, error) {
	rec, err := jsonrecord.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d: parse JSONL vertex record", lineNo)
	}

	var att string
	if t.opts.SmartValue != "" {
		f, ok := rec.Get(t.opts.SmartValue)
		att = t.smartToString(f, ok, lineNo)
		att = applyHashAndIndex(att, t.opts.HashSmartValue, t.opts.SmartIndex)
	}
	if att == "" {
		f, ok := rec.Get(t.opts.SmartAttr)
		att = t.smartToString(f, ok, lineNo)
	}

	keyFieldName := "_key"
	if t.opts.KeyValue != "" {
		keyFieldName = t.opts.KeyValue
	}
	keyField, haveKey := rec.Get(keyFieldName)

	var newKey string
	haveNewKey := false
	if haveKey && keyField.IsString() {
		orig, err := keyField.String()
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: decode key field %q", lineNo, keyFieldName)
		}
		newKey = rewriteKey(att, orig, lineNo, t.logger)
		haveNewKey = true
	} else if t.opts.WriteKey && att != "" {
		t.logger.Warnf("line %d: no string %q field found, cannot build smart key", lineNo, keyFieldName)
	}

	b := jsonrecord.NewBuilder()
	if t.opts.WriteKey || haveNewKey {
		b.WriteStringField("_key", newKey)
	}
	b.WriteStringField(t.opts.SmartAttr, att)
	for _, f := range rec.Fields() {
		if f.Key == "_key" || f.Key == t.opts.SmartAttr {
			continue
		}
		b.WriteRawField(f.Key, f.Raw)
	}
	return b.Bytes(), nil
}
