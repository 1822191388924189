package patch

import (
	"fmt"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/pointer"
)

// ApplyOps applies an ordered operation list against one mutable working
// copy and returns the resulting root.
//
// Path resolution is permissive: a missing or malformed path makes the
// individual operation a no-op rather than an error, so remediation on
// partially-matching documents does not abort. Callers verify results
// out-of-band by re-grading. The one loud failure is an unsupported
// operation kind, which stops the batch.
func ApplyOps(doc any, ops []Operation) (any, error) {
	root := doc
	for i, op := range ops {
		switch op.Op {
		case OpAdd, OpReplace:
			root = pointer.Set(root, op.Path, op.Value)
		case OpRemove:
			root = pointer.Remove(root, op.Path)
		case OpCopy:
			v, _ := pointer.Resolve(root, op.From)
			root = pointer.Set(root, op.Path, v)
		case OpMove:
			v, _ := pointer.Resolve(root, op.From)
			root = pointer.Remove(root, op.From)
			root = pointer.Set(root, op.Path, v)
		default:
			return root, fmt.Errorf("op %d (%q): %w", i, op.Op, ErrUnsupportedOp)
		}
	}
	return root, nil
}
