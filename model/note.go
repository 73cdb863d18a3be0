package model

// NoteID indexes a NotationNote inside a build's note arena. Tie links are
// expressed as NoteIDs so notes can be copied and serialized freely.
type NoteID int32

// NoNote marks an absent tie link.
const NoNote NoteID = -1

type Accidental uint8

const (
	AccidentalNone Accidental = iota
	AccidentalSharp
	AccidentalFlat
)

// NoteEvent is a raw input note. Start and Length are in quarter notes.
type NoteEvent struct {
	Start     float64 `json:"start"`
	Length    float64 `json:"length"`
	Pitch     uint8   `json:"pitch"`
	Intensity uint8   `json:"intensity"`
}

func (n NoteEvent) End() float64 {
	return n.Start + n.Length
}

// NotationNote is a NoteEvent resolved against the active key signature.
// TiedFrom/TiedTo chain the fragments of one sustained pitch that was split
// at a beat, measure or symbol boundary.
type NotationNote struct {
	NoteEvent
	Degree       int        `json:"degree"`
	OctaveOffset int        `json:"octaveOffset"`
	Accidental   Accidental `json:"accidental"`
	TiedFrom     NoteID     `json:"tiedFrom"`
	TiedTo       NoteID     `json:"tiedTo"`
}
