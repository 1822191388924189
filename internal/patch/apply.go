package patch

import (
	"bytes"
	"fmt"
	"os"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/document"
)

// Result reports what a batch application did. Applied counts patches
// that changed the working copy; when DryRun is set no write occurred.
type Result struct {
	Applied int  `json:"applied"`
	DryRun  bool `json:"dry_run"`
	Changed bool `json:"changed"`
}

// BackupSuffix is appended to the document path when preserving the
// original content before an overwrite.
const BackupSuffix = ".bak"

// ApplyFile applies a patch batch to the document at path.
//
// Order of checks: the integrity gate runs first against the raw bytes;
// only then is any mutation attempted. Structured documents take the
// structural path and textual patches in the batch are refused (the
// parsed tree is authoritative). Unparsable documents take the textual
// fallback and structural patches fail with ErrNotStructured.
//
// On a real (non-dry-run) change, the original content is written to
// path+BackupSuffix before the new content replaces the document.
func ApplyFile(path string, patches []Patch, dryRun bool) (Result, error) {
	res := Result{DryRun: dryRun}

	content, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := CheckPreimage(content, patches); err != nil {
		return res, err
	}

	out, applied, err := applyBatch(content, patches)
	if err != nil {
		return res, err
	}
	res.Applied = applied
	res.Changed = !bytes.Equal(out, content)

	if res.Changed && !dryRun {
		if err := os.WriteFile(path+BackupSuffix, content, 0o644); err != nil {
			return res, fmt.Errorf("writing backup: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return res, nil
}

// applyBatch runs every patch in order against one working copy and
// returns the resulting content.
func applyBatch(content []byte, patches []Patch) ([]byte, int, error) {
	doc, parseErr := document.Parse(content)

	if parseErr != nil {
		// Textual fallback path.
		text := string(content)
		applied := 0
		for _, p := range patches {
			if p.IsStructural() {
				return nil, 0, fmt.Errorf("structural patch on unparsable document: %w", ErrNotStructured)
			}
			next, ok := ApplyTextual(text, p.Diff)
			if !ok {
				// Ambiguous diff: non-fatal, this patch just doesn't apply.
				continue
			}
			text = next
			applied++
		}
		return []byte(text), applied, nil
	}

	var root any = doc
	applied := 0
	touched := false
	for _, p := range patches {
		if !p.IsStructural() {
			// Structured documents are patched structurally only.
			continue
		}
		next, err := ApplyOps(root, p.Ops)
		if err != nil {
			return nil, 0, err
		}
		root = next
		applied++
		touched = true
	}
	if !touched {
		return content, applied, nil
	}

	out, err := document.Serialize(root)
	if err != nil {
		return nil, 0, err
	}
	return out, applied, nil
}
