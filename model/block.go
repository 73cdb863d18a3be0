package model

// RenderProps carries everything a renderer needs to draw one block symbol.
// ContinuationDash is distinct from AugmentationDash: it replaces the number
// of a tied same-pitch continuation instead of extending a dotted value.
type RenderProps struct {
	DurationLines    int  `json:"durationLines"`
	AugmentationDots int  `json:"augmentationDots"`
	AugmentationDash bool `json:"augmentationDash"`
	ContinuationDash bool `json:"continuationDash"`
}

// Block is one renderable unit: a group of simultaneous notes, or a rest
// when Notes is empty. Start and Length are in quarters.
type Block struct {
	Start         float64     `json:"start"`
	Length        float64     `json:"length"`
	Notes         []NoteID    `json:"notes"`
	MeasureNumber float64     `json:"measureNumber"`
	Render        RenderProps `json:"renderProps"`
	BeatBegin     bool        `json:"beatBegin"`
	BeatEnd       bool        `json:"beatEnd"`
}

func (b Block) End() float64 {
	return b.Start + b.Length
}

// IsRest reports whether the block holds no sounding notes.
func (b Block) IsRest() bool {
	return len(b.Notes) == 0
}

// Diagnostic records a malformed-input condition the build recovered from.
type Diagnostic struct {
	Q       float64 `json:"q"`
	Message string  `json:"message"`
}

// BuildOutput is the serialized form of a build result, consumed by the
// external renderer.
type BuildOutput struct {
	Blocks        []Block        `json:"blocks"`
	NotationNotes []NotationNote `json:"notes"`
	Diagnostics   []Diagnostic   `json:"diagnostics,omitempty"`
	TotalDuration float64        `json:"totalDuration"`
	Metadata      *ScoreMetadata `json:"metadata,omitempty"`
}
