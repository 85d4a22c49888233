package repair

import (
	"fmt"
	"time"

	"github.com/jonathan/caseforge/internal/types"
)

// PersonRecord is one person block found in the family tree, labelled
// by its payload location. RefDeath carries the deceased's death date
// when it is present, every age in the dossier is measured against it.
type PersonRecord struct {
	Label    string
	Node     *types.Value
	RefDeath string
}

// CollectPersonRecords walks the famille subtree and returns every
// person object: the deceased, the partner and all list members under
// descendants, ascendants and collateraux.
func CollectPersonRecords(payload *types.Value) []PersonRecord {
	famille := payload.Get("famille")
	if famille == nil || famille.Kind != types.KindObject {
		return nil
	}

	var records []PersonRecord
	refDeath := ""
	if defunt := famille.Get("defunt"); defunt != nil && defunt.Kind == types.KindObject {
		refDeath = defunt.StringAt("date_deces")
		records = append(records, PersonRecord{Label: "famille.defunt", Node: defunt, RefDeath: refDeath})
	}
	if partenaire := famille.Get("partenaire"); partenaire != nil && partenaire.Kind == types.KindObject {
		records = append(records, PersonRecord{Label: "famille.partenaire", Node: partenaire, RefDeath: refDeath})
	}
	for _, bloc := range []string{"descendants", "ascendants", "collateraux"} {
		root := famille.Get(bloc)
		if root == nil || root.Kind != types.KindObject {
			continue
		}
		for _, group := range root.SortedKeys() {
			values := root.Get(group)
			if values == nil || values.Kind != types.KindArray {
				continue
			}
			for idx, person := range values.Arr {
				if person != nil && person.Kind == types.KindObject {
					records = append(records, PersonRecord{
						Label:    fmt.Sprintf("famille.%s.%s[%d]", bloc, group, idx),
						Node:     person,
						RefDeath: refDeath,
					})
				}
			}
		}
	}
	return records
}

// ParseISODate parses a strict YYYY-MM-DD date, returning ok=false for
// anything else.
func ParseISODate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// YearsBetween returns whole years elapsed from start to end.
func YearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}
