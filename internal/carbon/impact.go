package carbon

import (
	"fmt"
	"strings"
)

type ImpactTag string

const (
	TagGreen  ImpactTag = "green"
	TagYellow ImpactTag = "yellow"
	TagRed    ImpactTag = "red"
)

// ImpactTagFor classifies an eco score: >=8 green, >=5 yellow, else red.
func ImpactTagFor(ecoScore float64) ImpactTag {
	switch {
	case ecoScore >= 8:
		return TagGreen
	case ecoScore >= 5:
		return TagYellow
	default:
		return TagRed
	}
}

// categoryUnit maps a category keyword to an "equivalent units"
// metaphor. UX policy, not a correctness contract.
type categoryUnit struct {
	keyword    string
	multiplier float64
	label      string
}

var categoryUnits = []categoryUnit{
	{keyword: "electronic", multiplier: 90, label: "phone charges"},
	{keyword: "apparel", multiplier: 12, label: "wash cycles"},
	{keyword: "clothing", multiplier: 12, label: "wash cycles"},
}

const (
	defaultUnitMultiplier = 8
	defaultUnitLabel      = "daily actions"
)

// Equivalent renders a CO₂ amount as a category-flavored
// equivalent-units string, e.g. "≈ 451 phone charges".
func Equivalent(co2Kg float64, category string) string {
	cat := strings.ToLower(category)
	for _, u := range categoryUnits {
		if strings.Contains(cat, u.keyword) {
			return fmt.Sprintf("≈ %d %s", int(co2Kg*u.multiplier), u.label)
		}
	}
	return fmt.Sprintf("≈ %d %s", int(co2Kg*defaultUnitMultiplier), defaultUnitLabel)
}

var toneByTag = map[ImpactTag]string{
	TagGreen:  "Eco-conscious choice!",
	TagYellow: "A reasonable pick, greener options exist.",
	TagRed:    "Consider greener alternatives.",
}

// Tone is the qualitative sentence for an impact tag.
func Tone(tag ImpactTag) string {
	return toneByTag[tag]
}

// ImpactMessage combines the equivalent-units metaphor with a tone
// sentence keyed by impact tag.
func ImpactMessage(co2Kg float64, category string, tag ImpactTag) string {
	return fmt.Sprintf("This product emits ~%.2f kg CO₂ (%s). %s",
		co2Kg, Equivalent(co2Kg, category), toneByTag[tag])
}
