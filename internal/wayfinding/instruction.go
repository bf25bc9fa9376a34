package wayfinding

import (
	"fmt"
	"math"
	"math/big"
)

// Direction phrases used in instructions
const (
	PhraseAhead         = "straight ahead"
	PhraseSlightlyRight = "slightly to your right"
	PhraseRight         = "to your right"
	PhraseBehind        = "behind you"
	PhraseSlightlyLeft  = "slightly to your left"
	PhraseLeft          = "to your left"
)

// Guidance is an instruction broken into its parts.
type Guidance struct {
	MarkerID     string  `json:"marker_id"`
	Relative     float64 `json:"relative_direction"`
	Phrase       string  `json:"direction_phrase"`
	DistanceText string  `json:"distance_text"`
	Instruction  string  `json:"instruction"`
	Summary      string  `json:"summary"`
}

// RelativeDirection returns the angle of a target bearing relative to the
// observer's heading, normalized into (-180, 180]. Positive is clockwise.
func RelativeDirection(direction, heading float64) float64 {
	rel := NormalizeBearing(direction-heading+180) - 180
	if rel == -180 {
		return 180
	}
	return rel
}

// DirectionPhrase classifies a relative angle. Thresholds are checked in
// order and the first match wins. Angles at or below -135 match nothing
// and yield "".
func DirectionPhrase(relative float64) string {
	switch {
	case math.Abs(relative) < 10:
		return PhraseAhead
	case relative > 0 && relative < 45:
		return PhraseSlightlyRight
	case relative >= 45 && relative < 135:
		return PhraseRight
	case relative >= 135:
		return PhraseBehind
	case relative < 0 && relative > -45:
		return PhraseSlightlyLeft
	case relative <= -45 && relative > -135:
		return PhraseLeft
	}
	return ""
}

// FormatDistance renders meters as "1.5km" above one kilometer and as
// whole meters ("150m") otherwise.
func FormatDistance(meters float64) string {
	if meters > 1000 {
		return formatTenths(MetersToKilometers(meters)) + "km"
	}
	return fmt.Sprintf("%.0fm", math.Round(meters))
}

// Instruction describes where m lies relative to the observer's heading,
// e.g. "Gate 42 is 150m to your right". Headings and directions outside
// [0, 360) are accepted; the relative angle is normalized first so every
// input gets a direction phrase.
func Instruction(m Marker, heading float64) string {
	return Guide(m, heading).Instruction
}

// ReferenceInstruction is Instruction without normalizing the relative
// angle. Large negative angles get no direction phrase and the sentence
// ends with a bare space.
func ReferenceInstruction(m Marker, heading float64) string {
	return compose(m.Name, FormatDistance(m.Distance), DirectionPhrase(m.Direction-heading))
}

// Guide builds the structured guidance for m from the given heading.
func Guide(m Marker, heading float64) Guidance {
	rel := RelativeDirection(m.Direction, heading)
	phrase := DirectionPhrase(rel)
	if phrase == "" {
		// (-180, -135] is the mirror of ">= 135"
		phrase = PhraseBehind
	}
	dist := FormatDistance(m.Distance)

	return Guidance{
		MarkerID:     m.ID,
		Relative:     rel,
		Phrase:       phrase,
		DistanceText: dist,
		Instruction:  compose(m.Name, dist, phrase),
		Summary:      fmt.Sprintf("Walk %s in direction %.0f°.", dist, NormalizeBearing(math.Round(m.Direction))),
	}
}

// formatTenths renders km with one decimal, rounding exact ties up.
// fmt rounds ties to even, so 1.25 would print as 1.2.
func formatTenths(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return fmt.Sprintf("%.1f", km)
	}

	// floor(km*10 + 1/2) on the exact binary value of km
	r := new(big.Rat).SetFloat64(km)
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())

	ten := big.NewInt(10)
	whole, frac := new(big.Int).QuoRem(tenths, ten, new(big.Int))
	return fmt.Sprintf("%d.%d", whole, frac)
}

func compose(name, distance, phrase string) string {
	return fmt.Sprintf("%s is %s %s", name, distance, phrase)
}
