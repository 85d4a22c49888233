package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureSkipsEmptyAxes(t *testing.T) {
	d := Dimensions{
		Persona:        "enfant",
		Voice:          "premiere_personne",
		Format:         "recit_libre",
		LengthBand:     "moyen",
		Noise:          "propre",
		NumericDensity: "un_montant",
		DatePrecision:  "exacte",
		Complexity:     "simple",
		PrimaryTopic:   "ordre_heritiers",
	}
	assert.Equal(t,
		"enfant|premiere_personne|recit_libre|moyen|propre|un_montant|exacte|simple|ordre_heritiers",
		d.Signature())
}

func TestSignatureIncludesIntensityNotMode(t *testing.T) {
	d := Dimensions{
		Persona:               "enfant",
		Voice:                 "troisieme_personne",
		Format:                "recit_libre",
		LengthBand:            "moyen",
		Noise:                 "propre",
		NumericDensity:        "un_montant",
		DatePrecision:         "aucune",
		Complexity:            "hard_negative",
		PrimaryTopic:          "ordre_heritiers",
		SecondaryTopic:        "testament_legs",
		HardNegativeMode:      "pas_de_deces_clair",
		HardNegativeIntensity: "soft",
	}
	sig := d.Signature()
	assert.Contains(t, sig, "|soft|")
	assert.NotContains(t, sig, "pas_de_deces_clair")
	// secondary topic comes last
	assert.True(t, len(sig) > 0 && sig[len(sig)-len("testament_legs"):] == "testament_legs")
}
