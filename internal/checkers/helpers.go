// Package checkers ships the built-in rule checkers registered at
// startup. Each checker implements the grading.Checker contract and only
// emits findings for rules the selected profile actually carries, so the
// same registry serves every profile.
package checkers

import (
	"sort"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/pointer"
)

// httpMethods are the OpenAPI operation keys in deterministic order.
var httpMethods = []string{"get", "put", "post", "delete", "patch", "options", "head"}

// forEachOperation visits every operation in the document in a
// deterministic order (paths sorted, methods in httpMethods order), so
// finding lists are stable across runs.
func forEachOperation(doc map[string]any, fn func(path, method string, op map[string]any)) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}

	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			if op, ok := item[method].(map[string]any); ok {
				fn(path, method, op)
			}
		}
	}
}

// opPointer builds the pointer path addressing one operation.
func opPointer(path, method string) string {
	return "/paths/" + pointer.Escape(path) + "/" + method
}

// sortedKeys returns map keys in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// responseSchema digs the application/json schema out of a response
// object, tolerating missing levels.
func responseSchema(resp map[string]any) (map[string]any, bool) {
	content, ok := resp["content"].(map[string]any)
	if !ok {
		return nil, false
	}
	media, ok := content["application/json"].(map[string]any)
	if !ok {
		return nil, false
	}
	schema, ok := media["schema"].(map[string]any)
	return schema, ok
}

// schemaHasProperty reports whether a schema declares a top-level
// property with the given name.
func schemaHasProperty(schema map[string]any, name string) bool {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = props[name]
	return ok
}
