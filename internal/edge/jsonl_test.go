package edge

import (
	"testing"

	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/xlat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLEdgeRewritesEndpointsAndKey(t *testing.T) {
	tab := xlat.New()
	tab.Learn("profiles", "US:alice")
	tab.Learn("profiles", "DE:bob")
	opts := Options{FromVertColl: "profiles", ToVertColl: "profiles"}
	tr := NewJSONLTransformer(opts, tab, logging.Nop{})

	out, err := tr.TransformLine([]byte(`{"_key":"1","_from":"profiles/alice","_to":"profiles/bob","weight":3}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "{\"_key\":\"US:1:DE\",\"_from\":\"profiles/US:alice\",\"_to\":\"profiles/DE:bob\",\"weight\":3}\n", string(out))
}

func TestJSONLEdgeUnresolvedEndpointDropsKey(t *testing.T) {
	tab := xlat.New()
	tab.Learn("profiles", "US:alice")
	opts := Options{FromVertColl: "profiles", ToVertColl: "profiles"}
	tr := NewJSONLTransformer(opts, tab, logging.Nop{})

	out, err := tr.TransformLine([]byte(`{"_key":"1","_from":"profiles/alice","_to":"profiles/nobody"}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "{\"_from\":\"profiles/US:alice\",\"_to\":\"profiles/nobody\"}\n", string(out))
}

func TestJSONLEdgeAlreadyTransformedKeyIsPreservedVerbatim(t *testing.T) {
	tab := xlat.New()
	opts := Options{FromVertColl: "profiles", ToVertColl: "profiles"}
	tr := NewJSONLTransformer(opts, tab, logging.Nop{})

	out, err := tr.TransformLine([]byte(`{"_key":"US:1:DE","_from":"profiles/US:alice","_to":"profiles/DE:bob"}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "{\"_key\":\"US:1:DE\",\"_from\":\"profiles/US:alice\",\"_to\":\"profiles/DE:bob\"}\n", string(out))
}

func TestJSONLEdgeNonStringEndpointIsDropped(t *testing.T) {
	tab := xlat.New()
	opts := Options{FromVertColl: "profiles", ToVertColl: "profiles"}
	tr := NewJSONLTransformer(opts, tab, logging.Nop{})

	out, err := tr.TransformLine([]byte(`{"_key":"1","_from":7,"_to":"profiles/bob"}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "{\"_to\":\"profiles/bob\"}\n", string(out))
}

func TestJSONLEdgeBareKeyEndpointsGetCollectionPrefix(t *testing.T) {
	tab := xlat.New()
	opts := Options{FromVertColl: "profiles", ToVertColl: "profiles", SmartIndex: 2}
	tr := NewJSONLTransformer(opts, tab, logging.Nop{})

	out, err := tr.TransformLine([]byte(`{"_from":"alice","_to":"bob"}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "{\"_from\":\"profiles/al:alice\",\"_to\":\"profiles/bo:bob\"}\n", string(out))
}
