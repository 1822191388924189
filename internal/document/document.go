// Package document loads API specification documents into an untyped tree
// and computes the content hashes the patch subsystem uses for staleness
// detection.
//
// A parsed document is a tree of map[string]any, []any, and scalars.
// yaml.v3 parses both YAML and JSON input, so a single Parse covers the
// formats OpenAPI specs actually ship in.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes raw spec content into an untyped tree. The root of a
// well-formed spec is always a mapping; anything else is rejected so
// downstream stages can assume map access on the root.
func Parse(data []byte) (map[string]any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root is %T, want a mapping", root)
	}
	return m, nil
}

// ParseFile reads and parses the spec at path.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Serialize renders a document tree back to YAML.
func Serialize(doc any) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return data, nil
}

// Hash returns the hex-encoded sha256 of raw document content. Patches
// record this as their preimage hash; the integrity gate recomputes it
// before any mutation is attempted.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// IsStructured reports whether content parses as a structured document.
// The textual fallback patcher is only used when this returns false.
func IsStructured(content []byte) bool {
	_, err := Parse(content)
	return err == nil
}
