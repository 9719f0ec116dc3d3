package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteUnquoteRoundTrip(t *testing.T) {
	cases := []string{"abc", "", "hello world", "a-b-c"}
	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, Quote(s, '"'))
			assert.Equal(t, s, Unquote(Quote(s, '"'), '"'))
		})
	}
}

func TestQuoteWithEmbeddedQuote(t *testing.T) {
	assert.Equal(t, `"a""b""c"`, Quote(`a"b"c`, '"'))
	assert.Equal(t, `a"b"c`, Unquote(`"a""b""c"`, '"'))
}

func TestUnquoteBareString(t *testing.T) {
	assert.Equal(t, "xyz", Unquote("xyz", '"'))
	assert.Equal(t, "xyz", Unquote(`"xyz"`, '"'))
	assert.Equal(t, `xy"z`, Unquote(`"xy""z"`, '"'))
}

func TestQuoteWithAlternateQuoteChar(t *testing.T) {
	assert.Equal(t, "aaabca", Quote("abc", 'a'))
}

func TestSplitBasic(t *testing.T) {
	parts := Split("a,b,c", ',', '"')
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}

func TestSplitQuotedField(t *testing.T) {
	parts := Split(`"a,b",c`, ',', '"')
	assert.Equal(t, []string{`"a,b"`, "c"}, parts)
	assert.Equal(t, "a,b", Unquote(parts[0], '"'))
	assert.Equal(t, "c", parts[1])
}

func TestSplitDoubledQuoteInsideQuotedField(t *testing.T) {
	parts := Split(`"a,""b",c`, ',', '"')
	assert.Equal(t, []string{`"a,""b"`, "c"}, parts)
	assert.Equal(t, `a,"b`, Unquote(parts[0], '"'))
}

func TestSplitReenteringQuotedRegion(t *testing.T) {
	parts := Split(`"a"x"a",b,c`, ',', '"')
	assert.Equal(t, 3, len(parts))
	assert.Equal(t, "aa", Unquote(parts[0], '"'))
	assert.Equal(t, "b", parts[1])
	assert.Equal(t, "c", parts[2])
}

func TestSplitOfQuotedFieldsConcatenation(t *testing.T) {
	// a carries the quote char so Quote actually quotes it; a value with a
	// separator but no quote char is emitted bare and would split in two.
	a, b := `alpha,"beta"`, "gamma"
	line := Quote(a, '"') + "," + Quote(b, '"')
	parts := Split(line, ',', '"')
	if assert.Len(t, parts, 2) {
		assert.Equal(t, a, Unquote(parts[0], '"'))
		assert.Equal(t, b, Unquote(parts[1], '"'))
	}
}

func TestFindColumn(t *testing.T) {
	cols := []string{"_key", "name", "region"}
	assert.Equal(t, 0, FindColumn(cols, "_key"))
	assert.Equal(t, 2, FindColumn(cols, "region"))
	assert.Equal(t, -1, FindColumn(cols, "missing"))
}

func TestJoinRow(t *testing.T) {
	row := JoinRow([]string{"US:alice", "Alice", `say "hi"`}, ',', '"')
	assert.Equal(t, `US:alice,Alice,"say ""hi"""`, row)
}
