// Package pointer resolves and mutates locations in an untyped document
// tree using slash-delimited paths.
//
// Segments unescape ~1 → / and ~0 → ~ before any container dispatch.
// The literal segment "-" addresses the append position of a sequence and
// is valid only for mutation: Set appends, Remove drops the last element,
// Resolve reports not-found.
//
// Resolution is deliberately permissive: traversing through a missing key
// or a scalar yields (nil, false), never an error. Optimistic remediation
// on partially-matching documents must not abort; callers verify results
// out-of-band by re-grading.
package pointer

import (
	"strconv"
	"strings"
)

// Append is the segment that addresses one past the end of a sequence.
const Append = "-"

// Split parses a pointer into unescaped segments. The empty pointer and
// the bare "/" both address the whole document and yield no segments.
func Split(ptr string) []string {
	if ptr == "" || ptr == "/" {
		return nil
	}
	raw := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	segs := make([]string, len(raw))
	for i, s := range raw {
		segs[i] = unescape(s)
	}
	return segs
}

// unescape applies the ~1 → / and ~0 → ~ rules. ~1 must be replaced
// first so that ~01 decodes to the literal "~1".
func unescape(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	return strings.ReplaceAll(seg, "~0", "~")
}

// Escape encodes a raw segment for embedding in a pointer: ~ → ~0,
// / → ~1. Used when building pointers from document keys that contain
// slashes, such as API paths.
func Escape(seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}

// Resolve walks the pointer and returns the addressed value. The second
// return is false when any segment is missing, indexes out of range, is
// the append marker, or traverses through a non-container.
func Resolve(doc any, ptr string) (any, bool) {
	node := doc
	for _, seg := range Split(ptr) {
		switch c := node.(type) {
		case map[string]any:
			child, ok := c[seg]
			if !ok {
				return nil, false
			}
			node = child
		case []any:
			if seg == Append {
				return nil, false
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			node = c[i]
		default:
			return nil, false
		}
	}
	return node, true
}

// Set writes value at the pointer, creating intermediate object containers
// for missing segments (never intermediate sequences). At a sequence, a
// numeric segment indexes directly and "-" appends. The returned root must
// be used by the caller: appending to a top-level sequence or replacing
// the whole document produces a new root.
func Set(doc any, ptr string, value any) any {
	return setSegs(doc, Split(ptr), value)
}

func setSegs(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	seg := segs[0]

	switch c := node.(type) {
	case map[string]any:
		c[seg] = setSegs(c[seg], segs[1:], value)
		return c
	case []any:
		if seg == Append {
			return append(c, setSegs(nil, segs[1:], value))
		}
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(c) {
			c[i] = setSegs(c[i], segs[1:], value)
		}
		// Out-of-range index: permissive no-op.
		return c
	default:
		// Missing node or scalar in the way: replace with an object container.
		return map[string]any{seg: setSegs(nil, segs[1:], value)}
	}
}

// Remove deletes the value at the pointer. At an object it deletes the key
// if present; removing an absent key is a no-op, so Remove is idempotent.
// At a sequence, "-" removes the last element. The returned root must be
// used by the caller.
func Remove(doc any, ptr string) any {
	segs := Split(ptr)
	if len(segs) == 0 {
		return doc
	}
	return removeSegs(doc, segs)
}

func removeSegs(node any, segs []string) any {
	seg := segs[0]

	switch c := node.(type) {
	case map[string]any:
		if len(segs) == 1 {
			delete(c, seg)
			return c
		}
		if child, ok := c[seg]; ok {
			c[seg] = removeSegs(child, segs[1:])
		}
		return c
	case []any:
		i := len(c) - 1
		if seg != Append {
			n, err := strconv.Atoi(seg)
			if err != nil || n < 0 || n >= len(c) {
				return c
			}
			i = n
		}
		if i < 0 {
			return c
		}
		if len(segs) == 1 {
			return append(c[:i], c[i+1:]...)
		}
		c[i] = removeSegs(c[i], segs[1:])
		return c
	default:
		return node
	}
}
