package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arangodb-helper/graphutils/internal/cliopts"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRunVerticesCSVAppendsSmartAttrAndKey(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "profiles.csv", "name,region\nAlice,US\nBob,DE\n")
	out := filepath.Join(dir, "profiles.out.csv")

	opts := cliopts.VerticesOptions{
		Input:               in,
		Output:              out,
		SmartGraphAttribute: "region",
		Type:                "csv",
		WriteKey:            "true",
		Memory:              "4096",
	}
	require.NoError(t, RunVertices(opts, logging.Nop{}))

	got := readFile(t, out)
	assert.Equal(t, "name,region,_key\nAlice,US,US:\nBob,DE,DE:\n", got)
}

func TestRunVerticesJSONLRewritesKey(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "profiles.jsonl", `{"_key":"alice","region":"US"}`+"\n")
	out := filepath.Join(dir, "profiles.out.jsonl")

	opts := cliopts.VerticesOptions{
		Input:               in,
		Output:              out,
		SmartGraphAttribute: "region",
		Type:                "jsonl",
		WriteKey:            "true",
		Memory:              "4096",
	}
	require.NoError(t, RunVertices(opts, logging.Nop{}))

	got := readFile(t, out)
	assert.Equal(t, "{\"_key\":\"US:alice\",\"region\":\"US\"}\n", got)
}

func TestRunEdgesCSVResolvesEndpointsAndRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	vpath := writeFile(t, dir, "profiles.csv", "_key,name\nUS:alice,Alice\nDE:bob,Bob\n")
	epath := writeFile(t, dir, "knows.csv", "_key,_from,_to\n1,profiles/alice,profiles/bob\n")

	opts := cliopts.EdgesOptions{
		Vertices: []string{"profiles:" + vpath},
		Edges:    []string{epath + ":profiles:profiles"},
		Type:     "csv",
		Memory:   "4096",
		Threads:  2,
	}
	require.NoError(t, RunEdges(opts, logging.Nop{}))

	got := readFile(t, epath)
	assert.Equal(t, "_key,_from,_to\nUS:1:DE,profiles/US:alice,profiles/DE:bob\n", got)
}

func TestRunEdgesJSONLDropsKeyOnUnresolvedEndpoint(t *testing.T) {
	dir := t.TempDir()
	vpath := writeFile(t, dir, "profiles.jsonl", `{"_key":"US:alice","name":"Alice"}`+"\n")
	epath := writeFile(t, dir, "knows.jsonl", `{"_key":"1","_from":"profiles/alice","_to":"profiles/nobody"}`+"\n")

	opts := cliopts.EdgesOptions{
		Vertices: []string{"profiles:" + vpath},
		Edges:    []string{epath + ":profiles:profiles"},
		Type:     "jsonl",
		Memory:   "4096",
		Threads:  1,
	}
	require.NoError(t, RunEdges(opts, logging.Nop{}))

	got := readFile(t, epath)
	assert.Equal(t, "{\"_from\":\"profiles/US:alice\",\"_to\":\"profiles/nobody\"}\n", got)
}

func TestRunEdgesSmartIndexNeedsNoVertices(t *testing.T) {
	dir := t.TempDir()
	epath := writeFile(t, dir, "knows.csv", "_key,_from,_to\n1,profiles/USalice,profiles/DEbob\n")

	opts := cliopts.EdgesOptions{
		Edges:      []string{epath + ":profiles:profiles"},
		Type:       "csv",
		Memory:     "4096",
		Threads:    1,
		SmartIndex: 2,
	}
	require.NoError(t, RunEdges(opts, logging.Nop{}))

	got := readFile(t, epath)
	assert.Equal(t, "_key,_from,_to\nUS:1:DE,profiles/US:USalice,profiles/DE:DEbob\n", got)
}

func TestRunEdgesMissingVerticesAndSmartIndexErrors(t *testing.T) {
	dir := t.TempDir()
	epath := writeFile(t, dir, "knows.csv", "_key,_from,_to\n1,profiles/alice,profiles/bob\n")

	opts := cliopts.EdgesOptions{
		Edges:   []string{epath + ":profiles:profiles"},
		Type:    "csv",
		Memory:  "4096",
		Threads: 1,
	}
	assert.Error(t, RunEdges(opts, logging.Nop{}))
}
