package model

// TempoEvent sets the quarters-per-minute rate from Start onward.
type TempoEvent struct {
	Start float64 `json:"start"`
	QPM   float64 `json:"qpm"`
}

// KeyEvent sets the active major key from Start onward. Key is the pitch
// class of the tonic, 0 = C through 11 = B, sharp-major spelling.
type KeyEvent struct {
	Start float64 `json:"start"`
	Key   int     `json:"key"`
}

type TimeSigEvent struct {
	Start       float64 `json:"start"`
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
}

func (e TimeSigEvent) TimeSig() TimeSig {
	return TimeSig{Numerator: e.Numerator, Denominator: e.Denominator}
}

type TimeSig struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// MeasureLength is the measure span in quarters: numerator * 4/denominator.
func (ts TimeSig) MeasureLength() float64 {
	return float64(ts.Numerator) * 4 / float64(ts.Denominator)
}

// BeatLength is the beat unit in quarters: 4/denominator.
func (ts TimeSig) BeatLength() float64 {
	return 4 / float64(ts.Denominator)
}

// Score is the engine's input: an unordered note collection plus optional
// signature change lists. Length may force a score end beyond the last note;
// zero means "derive from the notes".
type Score struct {
	Notes    []NoteEvent    `json:"notes"`
	Tempos   []TempoEvent   `json:"tempos,omitempty"`
	Keys     []KeyEvent     `json:"keys,omitempty"`
	TimeSigs []TimeSigEvent `json:"timeSigs,omitempty"`
	Length   float64        `json:"length,omitempty"`
}

type ScoreMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}
