package coverage

import (
	"errors"
	"math/rand"
)

// ErrNoEligibleValue is returned when exclusions empty a target table.
var ErrNoEligibleValue = errors.New("no eligible value for target selection")

// PickUnderrepresented selects the value furthest behind its target
// share. Candidates are ranked by (count/share, count, random draw) and
// the smallest tuple wins, so ties between equally starved values are
// broken randomly but deterministically for a given rng state.
func PickUnderrepresented(targets Table, counts map[string]int, rng *rand.Rand, exclude map[string]struct{}) (string, error) {
	bestKey := ""
	var bestRatio, bestDraw float64
	bestCount := 0
	found := false
	for _, target := range targets {
		if _, blocked := exclude[target.Key]; blocked {
			continue
		}
		current := counts[target.Key]
		ratio := float64(current) / target.Share
		draw := rng.Float64()
		if !found || less(ratio, current, draw, bestRatio, bestCount, bestDraw) {
			bestKey = target.Key
			bestRatio, bestCount, bestDraw = ratio, current, draw
			found = true
		}
	}
	if !found {
		return "", ErrNoEligibleValue
	}
	return bestKey, nil
}

func less(ratio float64, count int, draw float64, bestRatio float64, bestCount int, bestDraw float64) bool {
	if ratio != bestRatio {
		return ratio < bestRatio
	}
	if count != bestCount {
		return count < bestCount
	}
	return draw < bestDraw
}

func exclusion(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}
