package synth

import (
	"fmt"

	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

// SetPathValue writes a leaf value into the payload tree, creating
// intermediate containers on the way. A Wildcard segment addresses the
// single synthesized element of an array, creating it when absent.
func SetPathValue(payload *types.Value, path schema.Path, value *types.Value) error {
	node := payload
	for i, token := range path {
		last := i == len(path)-1
		nextIsArray := !last && path[i+1] == types.Wildcard

		if token == types.Wildcard {
			if node.Kind != types.KindArray {
				return fmt.Errorf("array segment on non-array node at %s", schema.Path(path[:i]).String())
			}
			if len(node.Arr) == 0 {
				node.Append(containerFor(last, nextIsArray, value))
				if last {
					return nil
				}
			} else if last {
				node.Arr[0] = value
				return nil
			}
			child := node.Arr[0]
			if !containerMatches(child, nextIsArray) {
				child = containerFor(false, nextIsArray, nil)
				node.Arr[0] = child
			}
			node = child
			continue
		}

		if node.Kind != types.KindObject {
			return fmt.Errorf("object segment on non-object node at %s", schema.Path(path[:i]).String())
		}
		if last {
			node.Set(token, value)
			return nil
		}
		child := node.Get(token)
		if !containerMatches(child, nextIsArray) {
			child = containerFor(false, nextIsArray, nil)
			node.Set(token, child)
		}
		node = child
	}
	return fmt.Errorf("empty path")
}

func containerFor(last, nextIsArray bool, value *types.Value) *types.Value {
	if last {
		return value
	}
	if nextIsArray {
		return types.Array()
	}
	return types.Object()
}

func containerMatches(node *types.Value, wantArray bool) bool {
	if node == nil || node.Kind == types.KindNull {
		return false
	}
	if wantArray {
		return node.Kind == types.KindArray
	}
	return node.Kind == types.KindObject
}
