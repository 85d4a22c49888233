// Package guard validates externally authored narratives against their
// paired structured target: name coverage, leak heuristics and
// near-duplicate detection.
package guard

import (
	"strings"

	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/types"
)

// CollectNames walks the target tree and returns every personal name:
// any string under a "nom" key, a "*_nom" key, or inside a "*_noms"
// list. Deduplicated by normalized form, in traversal order.
func CollectNames(target *types.Value) []string {
	var names []string
	var visit func(node *types.Value, parentKey string)
	visit = func(node *types.Value, parentKey string) {
		switch node.Kind {
		case types.KindObject:
			for _, key := range node.SortedKeys() {
				keyNorm := strings.ToLower(key)
				child := node.Get(key)
				if child.Kind == types.KindString && isNameKey(keyNorm) {
					if cleaned := corpus.CleanName(child.Str); cleaned != "" {
						names = append(names, cleaned)
					}
				}
				visit(child, keyNorm)
			}
		case types.KindArray:
			for _, item := range node.Arr {
				if strings.HasSuffix(parentKey, "_noms") && item.Kind == types.KindString {
					if cleaned := corpus.CleanName(item.Str); cleaned != "" {
						names = append(names, cleaned)
					}
				}
				visit(item, parentKey)
			}
		}
	}
	visit(target, "")

	seen := make(map[string]struct{}, len(names))
	deduped := names[:0]
	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, name)
	}
	return deduped
}

// MissingNames returns the target names the narrative does not mention,
// verbatim or via the token heuristic.
func MissingNames(caseText string, target *types.Value) []string {
	if target == nil || target.Kind != types.KindObject {
		return nil
	}
	normalizedText := corpus.NormalizeKey(caseText)
	var missing []string
	for _, name := range CollectNames(target) {
		if !nameAppears(name, normalizedText) {
			missing = append(missing, name)
		}
	}
	return missing
}

// nameAppears accepts a verbatim match, a distinctive last token of at
// least four characters, or the last token plus any other token. A
// narrative may say "madame Durand" for "Claire Durand".
func nameAppears(name, normalizedText string) bool {
	cleaned := normalizeName(name)
	if cleaned == "" {
		return true
	}
	if strings.Contains(normalizedText, cleaned) {
		return true
	}
	var tokens []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) >= 2 {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	if !strings.Contains(normalizedText, last) {
		return false
	}
	if len(last) >= 4 {
		return true
	}
	for _, token := range tokens[:len(tokens)-1] {
		if strings.Contains(normalizedText, token) {
			return true
		}
	}
	return false
}

// normalizeName folds a name to lowercase ascii-ish tokens for
// comparison against normalized narrative text.
func normalizeName(name string) string {
	folded := corpus.NormalizeKey(name)
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isNameKey(key string) bool {
	return key == "nom" || strings.HasSuffix(key, "_nom") || strings.HasSuffix(key, "_noms")
}
