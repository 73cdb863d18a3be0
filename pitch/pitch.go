// Package pitch maps MIDI pitches to jianpu scale degrees. Only major-key
// spelling is modeled.
package pitch

import (
	"fmt"

	"github.com/flufy3d/jianpu/model"
)

// Mapping is the jianpu spelling of one pitch: the displayed degree 1-7, the
// octave-marker count (positive above, negative below, zero none) and an
// optional accidental.
type Mapping struct {
	Degree       int
	OctaveOffset int
	Accidental   model.Accidental
}

// diatonic maps the seven scale intervals to degrees.
var diatonic = map[int]int{
	0:  1,
	2:  2,
	4:  3,
	5:  4,
	7:  5,
	9:  6,
	11: 7,
}

// chromatic resolves the five off-scale intervals. Jianpu uses the
// sharp-major convention: each chromatic step is spelled as the sharp of
// the diatonic degree below it (1#, 2#, 4#, 5#, 6# in C).
var chromatic = map[int]Mapping{
	1:  {Degree: 1, Accidental: model.AccidentalSharp},
	3:  {Degree: 2, Accidental: model.AccidentalSharp},
	6:  {Degree: 4, Accidental: model.AccidentalSharp},
	8:  {Degree: 5, Accidental: model.AccidentalSharp},
	10: {Degree: 6, Accidental: model.AccidentalSharp},
}

// middleC anchors the tonic reference octave.
const middleC = 60

// Map spells pitch in the major key of tonic (0 = C ... 11 = B). It never
// fails: on an interval the tables cannot resolve it falls back to degree 1
// sharp and reports the inconsistency through the error.
func Map(pitch int, tonic int) (Mapping, error) {
	ref := tonicReference(tonic)
	interval := ((pitch-ref)%12 + 12) % 12
	offset := floorDiv(pitch-ref, 12)

	if degree, ok := diatonic[interval]; ok {
		return Mapping{Degree: degree, OctaveOffset: offset}, nil
	}
	if m, ok := chromatic[interval]; ok {
		m.OctaveOffset = offset
		return m, nil
	}

	fallback := Mapping{Degree: 1, OctaveOffset: offset, Accidental: model.AccidentalSharp}
	return fallback, fmt.Errorf("no degree mapping for interval %v (pitch %v, tonic %v)", interval, pitch, tonic)
}

// tonicReference is the tonic's pitch in the octave nearest middle C.
func tonicReference(tonic int) int {
	tonic = ((tonic % 12) + 12) % 12
	if tonic > 6 {
		return middleC + tonic - 12
	}
	return middleC + tonic
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
