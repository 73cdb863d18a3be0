package segment

import (
	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/timeline"
)

// Result is the immutable outcome of one build: the final block collection,
// the note arena backing its tie chains, any diagnostics, and the context
// queries a renderer needs alongside the blocks. It stays valid until the
// caller rebuilds.
type Result struct {
	blocks []model.Block
	notes  []model.NotationNote
	diags  []model.Diagnostic
	idx    *timeline.Index
	end    float64
}

// Blocks returns the final collection in start order. Consecutive blocks
// partition [0, TotalDuration) with no gaps or overlaps.
func (r *Result) Blocks() []model.Block {
	return r.blocks
}

// Notes returns the note arena; Block.Notes and tie links index into it.
func (r *Result) Notes() []model.NotationNote {
	return r.notes
}

func (r *Result) Note(id model.NoteID) model.NotationNote {
	return r.notes[id]
}

func (r *Result) Diagnostics() []model.Diagnostic {
	return r.diags
}

// TotalDuration is the score end in quarters, padded to a measure boundary.
func (r *Result) TotalDuration() float64 {
	return r.end
}

// IsLastMeasureAtQ reports whether t has reached the score's end, used by
// renderers to place the closing bar line.
func (r *Result) IsLastMeasureAtQ(t float64) bool {
	return t >= r.end-constants.Tolerance
}

func (r *Result) MeasureNumberAtQ(t float64) float64 {
	return r.idx.MeasureNumberAtQ(t)
}

func (r *Result) MeasureLengthAtQ(t float64) float64 {
	return r.idx.MeasureLengthAtQ(t)
}

func (r *Result) TempoAtQ(t float64, onlyChanges bool) float64 {
	return r.idx.TempoAtQ(t, onlyChanges)
}

func (r *Result) KeySignatureAtQ(t float64, onlyChanges bool) int {
	return r.idx.KeySignatureAtQ(t, onlyChanges)
}

func (r *Result) TimeSignatureAtQ(t float64, onlyChanges bool) model.TimeSig {
	return r.idx.TimeSignatureAtQ(t, onlyChanges)
}

func (r *Result) QuartersToTime(quarters, atQ float64) float64 {
	return r.idx.QuartersToTime(quarters, atQ)
}

func (r *Result) TimeToQuarters(seconds, atQ float64) float64 {
	return r.idx.TimeToQuarters(seconds, atQ)
}

func (r *Result) IsBeatStartAtQ(t float64) bool {
	return r.idx.IsBeatStartAtQ(t)
}

// Output bundles the result for serialization to the external renderer.
func (r *Result) Output() model.BuildOutput {
	return model.BuildOutput{
		Blocks:        r.blocks,
		NotationNotes: r.notes,
		Diagnostics:   r.diags,
		TotalDuration: r.end,
	}
}
