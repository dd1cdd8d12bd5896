// Package wantedly turns Wantedly "who viewed my profile" snapshot exports into
// storable profile-view records.
package wantedly

import (
	"bytes"
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

var edgesPath = []string{"data", "profileImpressionPage", "impressedUsers", "edges"}

// EdgesPath is the dotted location of the impression list inside a snapshot.
var EdgesPath = strings.Join(edgesPath, ".")

// ExtractEdges walks doc along EdgesPath and returns the raw edge elements.
// Any missing segment, non-object segment or non-array terminal yields a
// *StructureMismatchError.
func ExtractEdges(doc []byte) ([]json.RawMessage, error) {
	cur := json.RawMessage(doc)
	for i, seg := range edgesPath {
		at := strings.Join(edgesPath[:i], ".")
		if at == "" {
			at = "$"
		}
		if !startsWith(cur, '{') {
			return nil, &StructureMismatchError{Path: EdgesPath, At: at}
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, &StructureMismatchError{Path: EdgesPath, At: at, Err: err}
		}
		next, ok := obj[seg]
		if !ok {
			return nil, &StructureMismatchError{Path: EdgesPath, At: at, Err: errors.New("missing field " + seg)}
		}
		cur = next
	}

	if !startsWith(cur, '[') {
		return nil, &StructureMismatchError{Path: EdgesPath, At: EdgesPath}
	}
	var edges []json.RawMessage
	if err := json.Unmarshal(cur, &edges); err != nil {
		return nil, &StructureMismatchError{Path: EdgesPath, At: EdgesPath, Err: err}
	}
	return edges, nil
}

// NodeOf returns the raw `node` payload of the edge at index.
func NodeOf(edge json.RawMessage, index int) ([]byte, error) {
	if !startsWith(edge, '{') {
		return nil, &MissingNodeError{Index: index}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(edge, &fields); err != nil {
		return nil, &MissingNodeError{Index: index}
	}
	node, ok := fields["node"]
	if !ok {
		return nil, &MissingNodeError{Index: index}
	}
	return node, nil
}

func startsWith(b []byte, c byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && b[0] == c
}
