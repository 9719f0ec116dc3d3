package cliopts

import (
	"strconv"
	"strings"

	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/pkg/errors"
)

// VertexFile is one parsed --vertices descriptor: <collection>:<path>.
type VertexFile struct {
	Collection string
	Path       string
}

// ParseVertexDescriptor parses a single --vertices value.
func ParseVertexDescriptor(s string) (VertexFile, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return VertexFile{}, errors.Errorf(
			"value for --vertices must be of the form <collection>:<path>, got %q", s)
	}
	return VertexFile{Collection: s[:i], Path: s[i+1:]}, nil
}

// ColumnRename is one 0-based column-index -> new-name rename.
type ColumnRename struct {
	Index   int
	NewName string
}

// EdgeFile is one parsed --edges descriptor:
// <path>:<fromColl>:<toColl>[:<colnr>:<newname>]*
type EdgeFile struct {
	Path         string
	FromVertColl string
	ToVertColl   string
	Renames      []ColumnRename
}

// ParseEdgeDescriptor parses a single --edges value. Only the path,
// fromColl and toColl are split on plain ':'; the trailing rename pairs
// are split with the quote-aware csvcodec.Split (quote char '"') so a
// renamed column's new name may itself contain a colon, matching the
// original tool's use of its own CSV splitter for this part.
func ParseEdgeDescriptor(s string) (EdgeFile, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return EdgeFile{}, errors.Errorf(
			"value for --edges must be of the form <path>:<fromColl>:<toColl>[:colnr:newname...], got %q", s)
	}
	j := strings.IndexByte(s[i+1:], ':')
	if j < 0 {
		return EdgeFile{}, errors.Errorf(
			"value for --edges must be of the form <path>:<fromColl>:<toColl>[:colnr:newname...], got %q", s)
	}
	j += i + 1

	ef := EdgeFile{
		Path:         s[:i],
		FromVertColl: s[i+1 : j],
	}

	rest := s[j+1:]
	k := strings.IndexByte(rest, ':')
	if k < 0 {
		ef.ToVertColl = rest
		return ef, nil
	}
	ef.ToVertColl = rest[:k]

	renameParts := csvcodec.Split(rest[k+1:], ':', '"')
	for idx := range renameParts {
		renameParts[idx] = csvcodec.Unquote(renameParts[idx], '"')
	}
	if len(renameParts)%2 != 0 {
		return EdgeFile{}, errors.Errorf(
			"rename pairs in --edges value %q must come in <colnr>:<newname> pairs", s)
	}
	for p := 0; p < len(renameParts); p += 2 {
		nr, err := strconv.Atoi(renameParts[p])
		if err != nil {
			return EdgeFile{}, errors.Wrapf(err, "rename column number in --edges value %q", s)
		}
		ef.Renames = append(ef.Renames, ColumnRename{Index: nr, NewName: renameParts[p+1]})
	}

	return ef, nil
}

// ParseRenameColumn parses a single --rename-column value for vertices:
// <colnr>:<newname>.
func ParseRenameColumn(s string) (ColumnRename, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return ColumnRename{}, errors.Errorf(
			"value for --rename-column must be of the form <colnr>:<newname>, got %q", s)
	}
	nr, err := strconv.Atoi(s[:i])
	if err != nil {
		return ColumnRename{}, errors.Wrapf(err, "column number in --rename-column %q", s)
	}
	return ColumnRename{Index: nr, NewName: s[i+1:]}, nil
}
