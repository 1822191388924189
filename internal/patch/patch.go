// Package patch applies remediation edits to specification documents.
//
// Two application paths exist. Structured documents take the structural
// path: an ordered list of pointer-addressed operations applied to the
// parsed tree. Documents that cannot be parsed take the textual fallback:
// a restricted diff applied to raw text, all-or-nothing.
//
// Both paths sit behind the integrity gate: a patch computed against a
// document that has since drifted is rejected before any mutation.
package patch

import "errors"

// OpKind identifies a structural patch operation.
type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
	OpMove    OpKind = "move"
	OpCopy    OpKind = "copy"
	OpTest    OpKind = "test"
)

// Operation is one structural edit addressed by pointer paths.
type Operation struct {
	Op    OpKind `json:"op" yaml:"op"`
	Path  string `json:"path" yaml:"path"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Patch is a single remediation unit: either an ordered operation list
// (structural) or a diff body (textual), never both. PreimageHash is the
// content hash of the document the patch was computed against.
type Patch struct {
	Ops          []Operation `json:"ops,omitempty" yaml:"ops,omitempty"`
	Diff         string      `json:"diff,omitempty" yaml:"diff,omitempty"`
	PreimageHash string      `json:"preimage_hash" yaml:"preimage_hash"`
}

// IsStructural reports whether the patch carries pointer operations.
func (p Patch) IsStructural() bool {
	return len(p.Ops) > 0
}

// ErrUnsupportedOp is returned for operation kinds the executor refuses
// to apply. "test" is the known case: rather than silently treating it as
// a no-op precondition, the executor fails the batch loudly.
var ErrUnsupportedOp = errors.New("unsupported patch operation")

// ErrStalePatch is returned when a patch's preimage hash does not match
// the live document. The whole batch is rejected; the caller must re-read
// the document and regenerate patches.
var ErrStalePatch = errors.New("stale patch: preimage hash mismatch")

// ErrNotStructured is returned when structural operations are submitted
// against a document that does not parse as structured data.
var ErrNotStructured = errors.New("document is not structured")
