package vertex

import (
	"testing"

	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transformJSONL(t *testing.T, opts Options, line string) string {
	t.Helper()
	tr := NewJSONLTransformer(opts, logging.Nop{})
	out, err := tr.TransformLine([]byte(line), 1)
	require.NoError(t, err)
	return string(out)
}

func TestJSONLBasicRewrite(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"alice","name":"Alice","region":"US"}`)
	assert.Equal(t, "{\"_key\":\"US:alice\",\"region\":\"US\",\"name\":\"Alice\"}\n", out)
}

func TestJSONLMissingAttributeUsesSmartDefault(t *testing.T) {
	opts := Options{SmartAttr: "region", SmartDefault: "ZZ", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"42","name":"x"}`)
	assert.Equal(t, "{\"_key\":\"ZZ:42\",\"region\":\"ZZ\",\"name\":\"x\"}\n", out)
}

func TestJSONLNullAttributeUsesSmartDefault(t *testing.T) {
	opts := Options{SmartAttr: "region", SmartDefault: "ZZ", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"42","region":null}`)
	assert.Equal(t, "{\"_key\":\"ZZ:42\",\"region\":\"ZZ\"}\n", out)
}

func TestJSONLNonStringScalarIsStringified(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"42","region":7}`)
	assert.Equal(t, "{\"_key\":\"7:42\",\"region\":\"7\"}\n", out)
}

func TestJSONLComplexAttributeBecomesEmpty(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"42","region":["a","b"]}`)
	assert.Equal(t, "{\"_key\":\":42\",\"region\":\"\"}\n", out)
}

func TestJSONLSmartValueTakesPriorityAndIsHashed(t *testing.T) {
	opts := Options{SmartAttr: "smart", SmartValue: "email", HashSmartValue: true, SmartIndex: 4, WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"bob","email":"bob@x.com"}`)
	assert.Equal(t, "{\"_key\":\"cd15:bob\",\"smart\":\"cd15\",\"email\":\"bob@x.com\"}\n", out)
}

func TestJSONLExistingKeyMismatchIsCorrected(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true}
	out := transformJSONL(t, opts, `{"_key":"DE:alice","region":"US"}`)
	assert.Equal(t, "{\"_key\":\"US:alice\",\"region\":\"US\"}\n", out)
}

func TestJSONLWriteKeyFalseAndNoExistingKeyOmitsKey(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: false}
	out := transformJSONL(t, opts, `{"name":"Alice","region":"US"}`)
	assert.Equal(t, "{\"region\":\"US\",\"name\":\"Alice\"}\n", out)
}

func TestJSONLKeyValueOption(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true, KeyValue: "origKey"}
	out := transformJSONL(t, opts, `{"origKey":"alice","region":"US"}`)
	assert.Equal(t, "{\"_key\":\"US:alice\",\"region\":\"US\",\"origKey\":\"alice\"}\n", out)
}

func TestJSONLPreservesRemainingFieldOrder(t *testing.T) {
	opts := Options{SmartAttr: "region", WriteKey: true}
	out := transformJSONL(t, opts, `{"b":1,"_key":"alice","a":2,"region":"US"}`)
	assert.Equal(t, "{\"_key\":\"US:alice\",\"region\":\"US\",\"b\":1,\"a\":2}\n", out)
}
