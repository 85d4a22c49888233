package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/caseforge/internal/types"
)

// CheckSparseShape rejects payloads carrying null values, empty
// containers or blank strings. Sparse means every present node carries
// information.
func CheckSparseShape(payload *types.Value) error {
	var problems []string
	var walk func(node *types.Value, path []string)
	walk = func(node *types.Value, path []string) {
		at := types.PathString(path)
		if node == nil || node.Kind == types.KindNull {
			problems = append(problems, "null interdit à "+at)
			return
		}
		switch node.Kind {
		case types.KindObject:
			if len(node.Obj) == 0 {
				problems = append(problems, "objet vide interdit à "+at)
				return
			}
			for _, key := range node.SortedKeys() {
				if key == "" {
					problems = append(problems, "clé invalide à "+at)
					continue
				}
				walk(node.Get(key), append(path, key))
			}
		case types.KindArray:
			if len(node.Arr) == 0 {
				problems = append(problems, "liste vide interdite à "+at)
				return
			}
			for idx, item := range node.Arr {
				walk(item, append(path, fmt.Sprintf("[%d]", idx)))
			}
		case types.KindString:
			if strings.TrimSpace(node.Str) == "" {
				problems = append(problems, "string vide interdite à "+at)
			}
		}
	}
	walk(payload, nil)
	return reject("target généré non sparse", problems)
}
