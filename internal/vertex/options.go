// Package vertex implements the vertex transformer (spec §4.5, C5): it
// derives a vertex's smart graph attribute and rewrites its _key in
// place, in either CSV or JSONL form.
package vertex

import (
	"strings"

	"github.com/arangodb-helper/graphutils/internal/digest"
	"github.com/arangodb-helper/graphutils/internal/logging"
)

// Options configures SGA derivation and key rewriting, shared by the CSV
// and JSONL transformers.
type Options struct {
	SmartAttr      string
	SmartValue     string // "" if --smart-value was not given
	SmartIndex     int    // 0 means "no truncation"
	HashSmartValue bool
	SmartDefault   string // "" if --smart-default was not given
	WriteKey       bool
	KeyValue       string // "" means use _key
}

func applyHashAndIndex(att string, hash bool, index int) string {
	if hash {
		att = digest.Hex(att)
	}
	if index > 0 && len(att) > index {
		att = att[:index]
	}
	return att
}

// rewriteKey implements spec §4.5's key-rewriting rule, shared by both
// formats: if orig has no ':' it gets the att prefix; if it already has
// one, a mismatched prefix is a warning and gets corrected.
func rewriteKey(att, orig string, lineNo int64, logger logging.Logger) string {
	i := strings.IndexByte(orig, ':')
	if i < 0 {
		return att + ":" + orig
	}
	prefix := orig[:i]
	if prefix == att {
		return orig
	}
	logger.Warnf("line %d: found wrong key w.r.t. smart graph attribute: %q, smart graph attribute is %q",
		lineNo, orig, att)
	return att + ":" + orig[i+1:]
}
