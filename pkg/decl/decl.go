// Package decl reads class-declaration records produced by the declaration
// extractor.
//
// The extractor runs upstream of this tool (it interprets decorators and
// resolves injection tokens against the host language's type system) and
// hands over a flat JSON list:
//
//	[
//	  {
//	    "name": "AppComponent",
//	    "kind": "component",
//	    "dependencies": [
//	      {"token": "Router"},
//	      {"token": "Logger", "flags": {"optional": true}}
//	    ]
//	  }
//	]
//
// This package only decodes that contract into [digraph.Class] values;
// semantic validation (blank names, missing dependency arrays, and so on)
// is the graph builder's job and happens in digraph.Build. A dependency
// without a "flags" key decodes to a nil flags pointer, which is distinct
// from an explicit empty bag.
package decl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
)

// ReadJSON decodes a declaration list from r.
// Returns an ErrCodeInvalidInput error for malformed JSON. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) ([]digraph.Class, error) {
	var classes []digraph.Class
	if err := json.NewDecoder(r).Decode(&classes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode class declarations")
	}
	return classes, nil
}

// ReadFile reads a declaration list from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ReadFile(path string) ([]digraph.Class, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Marshal encodes a declaration list back to indented JSON, primarily for
// fixtures and round-trip tests.
func Marshal(classes []digraph.Class) ([]byte, error) {
	return json.MarshalIndent(classes, "", "  ")
}
