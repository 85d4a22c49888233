package prompt

import (
	"math/rand"
	"strings"

	"github.com/jonathan/caseforge/internal/corpus"
	"github.com/jonathan/caseforge/internal/types"
)

const (
	referenceExampleCount = 2
	excerptLimit          = 220
)

// PickReferenceExamples selects up to two corpus seeds matching the
// instruction's topics by keyword, falling back to the whole corpus
// when fewer than two seeds match. Excerpts are truncated so authors
// get a flavor of the register without a full text to copy.
func PickReferenceExamples(seeds []corpus.Seed, primaryTopic, secondaryTopic string, rng *rand.Rand) []types.ReferenceExample {
	if len(seeds) == 0 {
		return nil
	}

	var keywords []string
	keywords = append(keywords, TopicTemplates[primaryTopic].Keywords...)
	if secondaryTopic != "" {
		keywords = append(keywords, TopicTemplates[secondaryTopic].Keywords...)
	}
	normalized := make([]string, len(keywords))
	for i, word := range keywords {
		normalized[i] = corpus.NormalizeKey(word)
	}

	var candidates []corpus.Seed
	for _, seed := range seeds {
		seedKey := corpus.NormalizeKey(seed.Text)
		for _, keyword := range normalized {
			if keyword != "" && strings.Contains(seedKey, keyword) {
				candidates = append(candidates, seed)
				break
			}
		}
	}
	if len(candidates) < referenceExampleCount {
		candidates = append([]corpus.Seed(nil), seeds...)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := referenceExampleCount
	if len(candidates) < count {
		count = len(candidates)
	}
	examples := make([]types.ReferenceExample, 0, count)
	for _, seed := range candidates[:count] {
		examples = append(examples, types.ReferenceExample{
			CaseID:     seed.CaseID,
			SourceType: seed.SourceType,
			SourceName: seed.SourceName,
			Excerpt:    excerpt(seed.Text),
		})
	}
	return examples
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "…"
}
