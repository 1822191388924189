package patch

import (
	"fmt"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/document"
)

// CheckPreimage verifies every patch in a batch against the live content
// hash. One mismatch rejects the whole batch; the batch is atomic
// relative to its preimage check. A missing preimage hash counts as a
// mismatch: a patch that cannot prove what it was computed against is
// never applied.
//
// This is optimistic concurrency control against external edits: no
// locking, only detect-and-reject.
func CheckPreimage(content []byte, patches []Patch) error {
	live := document.Hash(content)
	for i, p := range patches {
		if p.PreimageHash != live {
			return fmt.Errorf("patch %d: %w (declared %.12s, live %.12s)",
				i, ErrStalePatch, p.PreimageHash, live)
		}
	}
	return nil
}
