package validation

import (
	"fmt"
	"slices"

	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

// CheckSchemaConformance verifies that every node of the payload sits
// at an allowed schema path and that every leaf matches its declared
// type and enum domain.
func CheckSchemaConformance(payload *types.Value, index *schema.Index) error {
	var problems []string
	var walk func(node *types.Value, path schema.Path)
	walk = func(node *types.Value, path schema.Path) {
		if !index.IsPathAllowed(path) {
			problems = append(problems, "chemin non autorisé: "+path.String())
			return
		}
		switch node.Kind {
		case types.KindObject:
			for _, key := range node.SortedKeys() {
				child := path.Child(key)
				if !index.IsPathAllowed(child) {
					problems = append(problems, "clé inconnue: "+child.String())
					continue
				}
				walk(node.Get(key), child)
			}
			return
		case types.KindArray:
			listPath := path.Child(types.Wildcard)
			if !index.IsPathAllowed(listPath) {
				problems = append(problems, "liste non autorisée: "+path.String())
				return
			}
			for _, item := range node.Arr {
				walk(item, listPath)
			}
			return
		}

		spec, isLeaf := index.LeafSpec(path)
		if !isLeaf {
			problems = append(problems, "valeur scalaire à un chemin non-feuille: "+path.String())
			return
		}
		switch spec.ExpectedType() {
		case "string":
			if node.Kind != types.KindString {
				problems = append(problems, "type attendu string à "+path.String())
			}
		case "number":
			if node.Kind != types.KindNumber {
				problems = append(problems, "type attendu number à "+path.String())
			}
		case "boolean":
			if node.Kind != types.KindBool {
				problems = append(problems, "type attendu boolean à "+path.String())
			}
		}
		if len(spec.Enum) > 0 {
			if node.Kind != types.KindString || !slices.Contains(spec.Enum, node.Str) {
				problems = append(problems, fmt.Sprintf("valeur hors enum à %s (attendu %v)", path.String(), spec.Enum))
			}
		}
	}
	walk(payload, nil)
	return reject("target généré non conforme au schéma", problems)
}
