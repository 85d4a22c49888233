package validation

import (
	"github.com/jonathan/caseforge/internal/synth"
	"github.com/jonathan/caseforge/internal/types"
)

// CheckTopicAlignment verifies both planned topics are materialized in
// the payload. Topics with required leaf paths need all of them; others
// only need one of their schema prefixes present.
func CheckTopicAlignment(payload *types.Value, primaryTopic, secondaryTopic string) error {
	var problems []string
	if !topicPresent(payload, primaryTopic) {
		problems = append(problems, "primary_topic="+primaryTopic+" absent de la cible")
	}
	if secondaryTopic != "" && !topicPresent(payload, secondaryTopic) {
		problems = append(problems, "secondary_topic="+secondaryTopic+" absent de la cible")
	}
	return reject("alignement topic/cible invalide", problems)
}

func topicPresent(payload *types.Value, topic string) bool {
	if required := synth.TopicRequiredLeafPaths[topic]; len(required) > 0 {
		for _, path := range required {
			if !payload.ExistsAt(path) {
				return false
			}
		}
		return true
	}
	for _, prefix := range synth.TopicSchemaPrefixes[topic] {
		if payload.ExistsAt(prefix) {
			return true
		}
	}
	return false
}
