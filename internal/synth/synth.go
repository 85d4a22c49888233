// Package synth builds candidate structured target payloads for
// planned instructions from the master schema index.
package synth

import (
	"math/rand"
	"sort"

	"github.com/jonathan/caseforge/internal/schema"
	"github.com/jonathan/caseforge/internal/types"
)

// includeProbability controls how many optional topic leaves a payload
// pulls in, per complexity tier.
var includeProbability = map[string]float64{
	"simple":        0.18,
	"intermediaire": 0.28,
	"complexe":      0.40,
	"hard_negative": 0.34,
}

const (
	sparsePrefixProbability = 0.16
	sparseLeafProbability   = 0.45
)

// stage2Roots fixes the emission order of thematic blocks so the same
// selection always produces the same tree.
var stage2Roots = []string{
	"contexte", "famille", "liberalites", "assurance_vie",
	"patrimoine", "indivision", "operations_de_partage",
}

// Synthesizer draws sparse payloads over a master schema index.
type Synthesizer struct {
	index *schema.Index
}

// New returns a synthesizer bound to a schema index.
func New(index *schema.Index) *Synthesizer {
	return &Synthesizer{index: index}
}

// Build synthesizes one candidate payload for the given dimensions. It
// returns the payload and the entity context used, so the repairer can
// keep names and marital status consistent.
func (s *Synthesizer) Build(d types.Dimensions, rng *rand.Rand) (*types.Value, *EntityContext, error) {
	ctx := NewEntityContext(rng)
	ctx.StatutMatrimonial = maritalStatus(d, rng)

	selected := s.selectPaths(d, ctx, rng)

	payload := types.Object()

	// Identities first, then thematic blocks in fixed root order.
	var stage1, stage2 []schema.Path
	for _, path := range selected {
		if isIdentityPath(path) {
			stage1 = append(stage1, path)
		} else {
			stage2 = append(stage2, path)
		}
	}
	sortPaths(stage1)
	if err := s.emit(payload, stage1, ctx, rng); err != nil {
		return nil, nil, err
	}
	for _, root := range stage2Roots {
		var rootPaths []schema.Path
		for _, path := range stage2 {
			if len(path) > 0 && path[0] == root {
				rootPaths = append(rootPaths, path)
			}
		}
		sortPaths(rootPaths)
		if err := s.emit(payload, rootPaths, ctx, rng); err != nil {
			return nil, nil, err
		}
	}
	return payload, ctx, nil
}

func (s *Synthesizer) emit(payload *types.Value, paths []schema.Path, ctx *EntityContext, rng *rand.Rand) error {
	for _, path := range paths {
		spec, ok := s.index.LeafSpec(path)
		if !ok {
			continue
		}
		if err := SetPathValue(payload, path, ctx.leafValue(path, spec, rng)); err != nil {
			return err
		}
	}
	return nil
}

// selectPaths gathers the mandatory leaves plus a random sample of the
// topic subtrees and the sparse coverage blocks.
func (s *Synthesizer) selectPaths(d types.Dimensions, ctx *EntityContext, rng *rand.Rand) []schema.Path {
	selected := make(map[string]schema.Path)
	add := func(path schema.Path) {
		selected[path.String()] = path
	}

	for _, path := range mandatoryPaths(d, ctx) {
		add(path)
	}
	for _, topic := range []string{d.PrimaryTopic, d.SecondaryTopic} {
		for _, path := range TopicRequiredLeafPaths[topic] {
			add(path)
		}
	}

	prefixes := topicPrefixes(d)
	proba, ok := includeProbability[d.Complexity]
	if !ok {
		proba = includeProbability["intermediaire"]
	}
	for _, path := range s.index.LeafPaths() {
		for _, prefix := range prefixes {
			if path.HasPrefix(prefix) {
				if rng.Float64() <= proba {
					add(path)
				}
				break
			}
		}
	}
	for _, sparse := range sparseCoveragePrefixes {
		if rng.Float64() > sparsePrefixProbability {
			continue
		}
		for _, path := range s.index.LeafPaths() {
			if path.HasPrefix(sparse) && rng.Float64() <= sparseLeafProbability {
				add(path)
			}
		}
	}

	paths := make([]schema.Path, 0, len(selected))
	for _, path := range selected {
		paths = append(paths, path)
	}
	return paths
}

// maritalStatus derives the deceased's marital status from the topics
// first, then lets the persona override it: a surviving-spouse narrator
// implies a marriage regardless of topic.
func maritalStatus(d types.Dimensions, rng *rand.Rand) string {
	var topicStatus string
	switch {
	case d.PrimaryTopic == "regimes_matrimoniaux" || d.SecondaryTopic == "regimes_matrimoniaux":
		topicStatus = "MARIE"
	case d.PrimaryTopic == "pacs_concubinage" || d.SecondaryTopic == "pacs_concubinage":
		if rng.Float64() < 0.7 {
			topicStatus = "PACSE"
		} else {
			topicStatus = "CELIBATAIRE"
		}
	case d.PrimaryTopic == "famille_recomposee":
		topicStatus = "MARIE"
	default:
		topicStatus = pick(rng, "MARIE", "PACSE", "CELIBATAIRE", "DIVORCE", "VEUF")
	}

	switch d.Persona {
	case "conjoint", "beau_enfant":
		return "MARIE"
	case "partenaire_pacs":
		return "PACSE"
	case "concubin":
		return "CELIBATAIRE"
	}
	return topicStatus
}

// mandatoryPaths lists the leaves every payload must carry: the core of
// the deceased's identity, plus whatever the persona presupposes.
func mandatoryPaths(d types.Dimensions, ctx *EntityContext) []schema.Path {
	paths := []schema.Path{
		{"famille", "defunt", "nom"},
		{"famille", "defunt", "statut_matrimonial"},
		{"famille", "defunt", "date_deces"},
	}
	if ctx.StatutMatrimonial == "MARIE" || ctx.StatutMatrimonial == "PACSE" || d.Persona == "concubin" {
		paths = append(paths,
			schema.Path{"famille", "partenaire", "nom"},
			schema.Path{"famille", "partenaire", "lien", "type"},
		)
	}
	switch d.Persona {
	case "enfant":
		paths = append(paths, schema.Path{"famille", "descendants", "enfants", "*", "nom"})
	case "beau_enfant":
		paths = append(paths,
			schema.Path{"famille", "descendants", "enfants", "*", "nom"},
			schema.Path{"famille", "descendants", "enfants", "*", "est_d_une_precedente_union"},
		)
	case "petit_enfant":
		paths = append(paths,
			schema.Path{"famille", "descendants", "enfants", "*", "nom"},
			schema.Path{"famille", "descendants", "petits_enfants", "*", "nom"},
			schema.Path{"famille", "descendants", "petits_enfants", "*", "parent_nom"},
		)
	case "fratrie":
		paths = append(paths, schema.Path{"famille", "collateraux", "freres_soeurs", "*", "nom"})
	case "associe":
		paths = append(paths,
			schema.Path{"patrimoine", "actifs", "*", "type"},
			schema.Path{"patrimoine", "actifs", "*", "entreprise", "type"},
		)
	}
	return paths
}

// topicPrefixes resolves the schema subtrees in play for an
// instruction. Complex and adversarial cases also sample procedural
// context and partition operations for extra texture.
func topicPrefixes(d types.Dimensions) []schema.Path {
	prefixes := []schema.Path{{"famille", "defunt"}}
	prefixes = append(prefixes, TopicSchemaPrefixes[d.PrimaryTopic]...)
	if d.SecondaryTopic != "" {
		prefixes = append(prefixes, TopicSchemaPrefixes[d.SecondaryTopic]...)
	}
	if d.Complexity == "complexe" || d.Complexity == "hard_negative" {
		prefixes = append(prefixes, schema.Path{"contexte", "procedure"}, schema.Path{"operations_de_partage"})
	}

	seen := make(map[string]struct{}, len(prefixes))
	deduped := prefixes[:0]
	for _, prefix := range prefixes {
		key := prefix.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, prefix)
	}
	return deduped
}

func isIdentityPath(path schema.Path) bool {
	return path.HasPrefix(schema.Path{"famille", "defunt"}) || path.HasPrefix(schema.Path{"famille", "partenaire"})
}

func sortPaths(paths []schema.Path) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].String() < paths[j].String()
	})
}
