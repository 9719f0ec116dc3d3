// Package xlat implements the translation table (spec §3, §4.4): an
// interned set of smart-graph-attribute strings plus a map from a
// fully-qualified vertex reference (collection/key) to the interned SGA
// id. It is populated single-threaded by the vertex buffer and read
// lock-free by concurrent edge workers once a batch is filled.
package xlat

import "strings"

// ID is the interned index of a smart graph attribute value.
type ID uint32

// Approximate per-entry overhead used for the memory accounting; the
// exact figures don't matter, only that --memory keeps a meaning
// proportional to true heap usage.
const (
	attrEntryOverhead = 32 // rough map-bucket + pointer overhead for attrIndex
	keyEntryOverhead  = 32 // rough map-bucket + pointer overhead for keyIndex
)

// Table is the translation table of spec §4.4.
type Table struct {
	attrs     []string
	attrIndex map[string]ID
	keyIndex  map[string]ID
	memUsage  int64
}

// New returns an empty translation table.
func New() *Table {
	t := &Table{}
	t.clearLocked()
	return t
}

func (t *Table) clearLocked() {
	t.attrs = nil
	t.attrIndex = make(map[string]ID)
	t.keyIndex = make(map[string]ID)
	t.memUsage = 0
}

// Clear empties the table and resets memory usage to zero.
func (t *Table) Clear() {
	t.clearLocked()
}

// MemUsage returns the running estimate of bytes used by the table.
func (t *Table) MemUsage() int64 {
	return t.memUsage
}

// Len returns the number of interned SGA values.
func (t *Table) Len() int {
	return len(t.attrs)
}

// Intern looks up att in the attribute set, interning it if absent, and
// returns its id. Satisfies attrs[attrIndex[s]] == s.
func (t *Table) Intern(att string) ID {
	if id, ok := t.attrIndex[att]; ok {
		return id
	}
	id := ID(len(t.attrs))
	t.attrs = append(t.attrs, att)
	t.attrIndex[att] = id
	t.memUsage += int64(2*len(att)) + attrEntryOverhead
	return id
}

// Attr returns the interned string for id. The caller must ensure id was
// produced by this table.
func (t *Table) Attr(id ID) string {
	return t.attrs[id]
}

// RecordVertex records that ref (a "coll/key" vertex reference) maps to
// the SGA interned as id, if ref isn't already recorded.
func (t *Table) RecordVertex(ref string, id ID) {
	if _, ok := t.keyIndex[ref]; ok {
		return
	}
	t.keyIndex[ref] = id
	t.memUsage += int64(2*len(ref)) + keyEntryOverhead
}

// Lookup returns the SGA id recorded for a vertex reference, and whether
// it was found.
func (t *Table) Lookup(ref string) (ID, bool) {
	id, ok := t.keyIndex[ref]
	return id, ok
}

// LookupAttr is a convenience wrapper combining Lookup and Attr.
func (t *Table) LookupAttr(ref string) (string, bool) {
	id, ok := t.keyIndex[ref]
	if !ok {
		return "", false
	}
	return t.attrs[id], true
}

// Learn implements spec §4.7's per-line learning step: if key has the
// form "att:rest" it interns att and records collName+"/"+rest against
// it. Keys without a ':' are not smart keys yet and are skipped.
func (t *Table) Learn(collName, key string) {
	i := strings.IndexByte(key, ':')
	if i < 0 {
		return
	}
	att := key[:i]
	rest := key[i+1:]
	id := t.Intern(att)
	t.RecordVertex(collName+"/"+rest, id)
}
