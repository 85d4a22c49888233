// Package schema parses the master nested schema into the two indices the
// generation engine works from: the set of allowed structural paths and the
// per-leaf type/enum specs.
package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/caseforge/internal/types"
)

// Path is an ordered tuple of segments addressing one schema node. A literal
// segment is an object key; types.Wildcard stands for any array element.
type Path []string

// String renders the path for error messages.
func (p Path) String() string { return types.PathString(p) }

// Child returns p extended with one segment.
func (p Path) Child(segment string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, segment)
}

// HasPrefix reports whether p starts with the given prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(p) < len(prefix) {
		return false
	}
	for i, segment := range prefix {
		if p[i] != segment {
			return false
		}
	}
	return true
}

// LeafKey returns the segment naming the leaf: the last literal segment,
// skipping a trailing wildcard.
func (p Path) LeafKey() string {
	if len(p) == 0 {
		return ""
	}
	if p[len(p)-1] == types.Wildcard && len(p) >= 2 {
		return p[len(p)-2]
	}
	return p[len(p)-1]
}

// Contains reports whether any segment equals the given token.
func (p Path) Contains(token string) bool {
	for _, segment := range p {
		if segment == token {
			return true
		}
	}
	return false
}

func pathKey(p Path) string { return strings.Join(p, "\x1f") }

// LeafSpec carries the metadata of one scalar schema leaf.
type LeafSpec struct {
	Description string
	Type        string
	Enum        []string
}

// ExpectedType resolves the concrete scalar type: the explicit tag when
// present, otherwise string (enumerated leaves are always strings).
func (s LeafSpec) ExpectedType() string {
	switch s.Type {
	case "string", "number", "boolean":
		return s.Type
	}
	return "string"
}

// Index holds the parsed master schema.
type Index struct {
	allowed map[string]struct{}
	leaves  map[string]LeafSpec
	ordered []Path
}

// IsPathAllowed reports whether the path names a known structural node or leaf.
func (ix *Index) IsPathAllowed(p Path) bool {
	_, ok := ix.allowed[pathKey(p)]
	return ok
}

// LeafSpec returns the spec of the leaf at the given path.
func (ix *Index) LeafSpec(p Path) (LeafSpec, bool) {
	spec, ok := ix.leaves[pathKey(p)]
	return spec, ok
}

// LeafPaths returns every leaf path in lexical order. Callers must not
// mutate the returned slice.
func (ix *Index) LeafPaths() []Path { return ix.ordered }

// LeafCount returns the number of indexed leaves.
func (ix *Index) LeafCount() int { return len(ix.ordered) }

var leafMetaKeys = map[string]struct{}{
	"description": {},
	"type":        {},
	"enum":        {},
}

// isLeaf reports whether the node is a metadata-only leaf spec. A structural
// node that happens to use "type" as a child object key is not a leaf.
func isLeaf(node *types.Value) bool {
	if node == nil || node.Kind != types.KindObject || len(node.Obj) == 0 {
		return false
	}
	for key := range node.Obj {
		if _, ok := leafMetaKeys[key]; !ok {
			return false
		}
	}
	if typeNode := node.Get("type"); typeNode != nil && typeNode.Kind != types.KindString {
		return false
	}
	if enumNode := node.Get("enum"); enumNode != nil && enumNode.Kind != types.KindArray {
		return false
	}
	return true
}

func leafSpecFrom(node *types.Value) LeafSpec {
	spec := LeafSpec{
		Description: node.StringAt("description"),
		Type:        node.StringAt("type"),
	}
	if enumNode := node.Get("enum"); enumNode != nil && enumNode.Kind == types.KindArray {
		for _, item := range enumNode.Arr {
			if item.Kind == types.KindString && strings.TrimSpace(item.Str) != "" {
				spec.Enum = append(spec.Enum, strings.TrimSpace(item.Str))
			}
		}
	}
	return spec
}

// Build indexes a parsed master schema document. The root must be an object.
func Build(root *types.Value) (*Index, error) {
	if root == nil || root.Kind != types.KindObject {
		return nil, fmt.Errorf("schema: master schema root must be an object")
	}
	ix := &Index{
		allowed: map[string]struct{}{},
		leaves:  map[string]LeafSpec{},
	}
	ix.walk(root, nil)
	if len(ix.ordered) == 0 {
		return nil, fmt.Errorf("schema: master schema declares no leaves")
	}
	sort.Slice(ix.ordered, func(i, j int) bool {
		return pathKey(ix.ordered[i]) < pathKey(ix.ordered[j])
	})
	return ix, nil
}

func (ix *Index) walk(node *types.Value, path Path) {
	ix.allowed[pathKey(path)] = struct{}{}
	if isLeaf(node) {
		ix.leaves[pathKey(path)] = leafSpecFrom(node)
		ix.ordered = append(ix.ordered, path)
		return
	}
	switch node.Kind {
	case types.KindObject:
		for _, key := range node.SortedKeys() {
			ix.walk(node.Obj[key], path.Child(key))
		}
	case types.KindArray:
		wildcard := path.Child(types.Wildcard)
		ix.allowed[pathKey(wildcard)] = struct{}{}
		if len(node.Arr) > 0 {
			ix.walk(node.Arr[0], wildcard)
		}
	}
}

// Load reads, meta-validates and indexes a master schema file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read master schema %s: %w", path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	root, err := types.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("schema: parse master schema %s: %w", path, err)
	}
	return Build(root)
}

// ResolvePath tries common relative locations for a schema file, so commands
// and tests work from different working directories. Returns "" when none
// exists.
func ResolvePath(relative string) string {
	candidates := []string{
		relative,
		filepath.Join("..", relative),
		filepath.Join("..", "..", relative),
	}
	for _, candidate := range candidates {
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
	}
	return ""
}
