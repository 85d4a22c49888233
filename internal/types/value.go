// Package types provides type definitions for structured data used throughout the caseforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Wildcard is the path segment standing for "any array element".
const Wildcard = "*"

// Kind discriminates the variants of a Value.
type Kind int

const (
	// KindNull is the zero Kind; it never appears in an accepted payload.
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// String returns the lowercase name of the kind, matching schema type tags.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Value is a tagged-union tree node modelling both schema documents and
// synthesized target payloads. Traversal switches on Kind rather than using
// runtime type inspection.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Obj  map[string]*Value
	Arr  []*Value
}

// Null returns the null value.
func Null() *Value { return &Value{Kind: KindNull} }

// String creates a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Number creates a number value.
func Number(n float64) *Value { return &Value{Kind: KindNumber, Num: n} }

// Int creates a number value from an integer.
func Int(n int) *Value { return Number(float64(n)) }

// Boolean creates a boolean value.
func Boolean(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Object creates an empty object value.
func Object() *Value { return &Value{Kind: KindObject, Obj: map[string]*Value{}} }

// Array creates an empty array value.
func Array() *Value { return &Value{Kind: KindArray, Arr: []*Value{}} }

// IsNull reports whether v is nil or the null variant.
func (v *Value) IsNull() bool { return v == nil || v.Kind == KindNull }

// Get returns the child at key for object values, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	return v.Obj[key]
}

// Set assigns a child at key. It panics on non-object values; callers build
// objects through Object() so this is a programming error, not input error.
func (v *Value) Set(key string, child *Value) {
	if v.Kind != KindObject {
		panic(fmt.Sprintf("types: Set on %s value", v.Kind))
	}
	v.Obj[key] = child
}

// Delete removes a key from an object value.
func (v *Value) Delete(key string) {
	if v != nil && v.Kind == KindObject {
		delete(v.Obj, key)
	}
}

// Append adds an element to an array value.
func (v *Value) Append(child *Value) {
	if v.Kind != KindArray {
		panic(fmt.Sprintf("types: Append on %s value", v.Kind))
	}
	v.Arr = append(v.Arr, child)
}

// SortedKeys returns the object keys in lexical order. Returns nil for
// non-object values.
func (v *Value) SortedKeys() []string {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.Obj))
	for key := range v.Obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// StringAt returns the string child at key, or "" when absent or non-string.
func (v *Value) StringAt(key string) string {
	child := v.Get(key)
	if child == nil || child.Kind != KindString {
		return ""
	}
	return child.Str
}

// NumberAt returns the numeric child at key and whether it was present.
func (v *Value) NumberAt(key string) (float64, bool) {
	child := v.Get(key)
	if child == nil || child.Kind != KindNumber {
		return 0, false
	}
	return child.Num, true
}

// BoolAt returns the boolean child at key and whether it was present.
func (v *Value) BoolAt(key string) (bool, bool) {
	child := v.Get(key)
	if child == nil || child.Kind != KindBool {
		return false, false
	}
	return child.Bool, true
}

// ExistsAt reports whether the given path resolves inside the tree. A
// Wildcard segment matches any element of an array node.
func (v *Value) ExistsAt(path []string) bool {
	if v == nil {
		return false
	}
	if len(path) == 0 {
		return true
	}
	segment := path[0]
	if segment == Wildcard {
		if v.Kind != KindArray || len(v.Arr) == 0 {
			return false
		}
		for _, item := range v.Arr {
			if item.ExistsAt(path[1:]) {
				return true
			}
		}
		return false
	}
	if v.Kind != KindObject {
		return false
	}
	child, ok := v.Obj[segment]
	if !ok {
		return false
	}
	return child.ExistsAt(path[1:])
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Str: v.Str, Num: v.Num, Bool: v.Bool}
	switch v.Kind {
	case KindObject:
		out.Obj = make(map[string]*Value, len(v.Obj))
		for key, child := range v.Obj {
			out.Obj[key] = child.Clone()
		}
	case KindArray:
		out.Arr = make([]*Value, len(v.Arr))
		for i, child := range v.Arr {
			out.Arr[i] = child.Clone()
		}
	}
	return out
}

// Equal reports deep equality of two trees.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v.IsNull() && other.IsNull()
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindObject:
		if len(v.Obj) != len(other.Obj) {
			return false
		}
		for key, child := range v.Obj {
			if !child.Equal(other.Obj[key]) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.Arr) != len(other.Arr) {
			return false
		}
		for i, child := range v.Arr {
			if !child.Equal(other.Arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON writes the tree with object keys in lexical order, so the same
// tree always serializes to the same bytes.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		encoded, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return fmt.Errorf("types: non-finite number is not serializable")
		}
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1e15 {
			fmt.Fprintf(buf, "%d", int64(v.Num))
		} else {
			fmt.Fprintf(buf, "%g", v.Num)
		}
	case KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindObject:
		buf.WriteByte('{')
		for i, key := range v.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			if err := v.Obj[key].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, child := range v.Arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := child.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// UnmarshalJSON parses arbitrary JSON into the tagged-union tree.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// ParseJSON decodes a JSON document into a value tree.
func ParseJSON(data []byte) (*Value, error) {
	value := &Value{}
	if err := value.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return value, nil
}

func fromAny(raw any) (*Value, error) {
	switch node := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(node), nil
	case bool:
		return Boolean(node), nil
	case json.Number:
		parsed, err := node.Float64()
		if err != nil {
			return nil, fmt.Errorf("types: invalid number %q: %w", node.String(), err)
		}
		return Number(parsed), nil
	case float64:
		return Number(node), nil
	case map[string]any:
		out := Object()
		for key, child := range node {
			parsed, err := fromAny(child)
			if err != nil {
				return nil, err
			}
			out.Obj[key] = parsed
		}
		return out, nil
	case []any:
		out := Array()
		for _, child := range node {
			parsed, err := fromAny(child)
			if err != nil {
				return nil, err
			}
			out.Arr = append(out.Arr, parsed)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("types: unsupported JSON node %T", raw)
	}
}

// PathString renders a payload path for error messages.
func PathString(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, ".")
}
