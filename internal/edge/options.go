// Package edge implements the edge transformer (spec §4.6, C6): it
// rewrites an edge's _from/_to endpoints to their sharded-key form using
// the translation table built from vertex data, and derives _key from
// the two endpoint attributes.
package edge

import (
	"strings"

	"github.com/arangodb-helper/graphutils/internal/xlat"
)

// Options configures endpoint lookup and key derivation, shared by the
// CSV and JSONL transformers.
type Options struct {
	FromVertColl string
	ToVertColl   string
	SmartIndex   int // >0: derive the attribute from a key prefix instead of a table lookup

	// FromAttribute/ToAttribute name the input fields that hold the
	// from/to endpoint, in case the source data does not use the literal
	// "_from"/"_to" names. Empty means "_from"/"_to". CSV output keeps
	// the header's column names. JSONL output writes the rewritten
	// endpoints as "_from"/"_to" and passes differently named source
	// fields through unchanged.
	FromAttribute string
	ToAttribute   string
}

func (o Options) fromFieldName() string {
	if o.FromAttribute != "" {
		return o.FromAttribute
	}
	return "_from"
}

func (o Options) toFieldName() string {
	if o.ToAttribute != "" {
		return o.ToAttribute
	}
	return "_to"
}

// translateEndpoint rewrites one endpoint value (e.g. "profiles/alice" or
// a bare key) to its sharded-key form and returns the smart graph
// attribute it resolved to ("" if it could not be resolved). Mirrors the
// original tool's "translate" closure used for both _from and _to.
func translateEndpoint(table *xlat.Table, raw, vertColl string, smartIndex int) (newValue, attr string) {
	found := raw
	slashPos := strings.IndexByte(found, '/')
	if slashPos < 0 {
		found = vertColl + "/" + found
		slashPos = len(vertColl)
	}
	rest := found[slashPos+1:]

	if colPos := strings.IndexByte(rest, ':'); colPos >= 0 {
		// already transformed
		return found, rest[:colPos]
	}

	if smartIndex > 0 {
		n := smartIndex
		if n > len(rest) {
			n = len(rest)
		}
		att := rest[:n]
		return found[:slashPos+1] + att + ":" + rest, att
	}

	id, ok := table.Lookup(found)
	if !ok {
		return found, ""
	}
	att := table.Attr(id)
	return found[:slashPos+1] + att + ":" + rest, att
}

// rewriteEdgeKey derives the edge's sharded _key from its two resolved
// endpoint attributes, following spec §4.6: if either endpoint could not
// be resolved, or the key already carries a ':' (already transformed),
// it is left untouched.
func rewriteEdgeKey(fromAttr, toAttr, orig string) (newKey string, changed bool) {
	if fromAttr == "" || toAttr == "" {
		return "", false
	}
	if strings.IndexByte(orig, ':') >= 0 {
		return "", false
	}
	return fromAttr + ":" + orig + ":" + toAttr, true
}
