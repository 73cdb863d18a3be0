package segment

import (
	"testing"

	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/timeline"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNoteLengths(t *testing.T) {
	cases := []struct {
		length float64
		want   model.RenderProps
	}{
		{6, model.RenderProps{AugmentationDots: 1, AugmentationDash: true}},
		{4, model.RenderProps{AugmentationDash: true}},
		{3, model.RenderProps{AugmentationDots: 1, AugmentationDash: true}},
		{2, model.RenderProps{AugmentationDash: true}},
		{1.5, model.RenderProps{AugmentationDots: 1}},
		{1, model.RenderProps{}},
		{0.75, model.RenderProps{DurationLines: 1, AugmentationDots: 1}},
		{0.5, model.RenderProps{DurationLines: 1}},
		{0.375, model.RenderProps{DurationLines: 2, AugmentationDots: 1}},
		{0.25, model.RenderProps{DurationLines: 2}},
		{0.125, model.RenderProps{DurationLines: 3}},
		{0.0625, model.RenderProps{DurationLines: 4}},
	}

	assert := assert.New(t)
	for _, c := range cases {
		var diags []model.Diagnostic
		b := model.Block{Length: c.length, Notes: []model.NoteID{0}}
		assert.Equal(c.want, classify(&b, &diags), "length %v", c.length)
		assert.Empty(diags, "length %v", c.length)
	}
}

func TestClassifyRestsNeverGetDashes(t *testing.T) {
	assert := assert.New(t)
	for _, length := range []float64{6, 4, 3, 2} {
		var diags []model.Diagnostic
		b := model.Block{Length: length}
		assert.False(classify(&b, &diags).AugmentationDash, "length %v", length)
	}
}

func TestClassifySub64thReportsDiagnostic(t *testing.T) {
	var diags []model.Diagnostic
	b := model.Block{Start: 1.5, Length: 0.01}

	props := classify(&b, &diags)

	assert := assert.New(t)
	assert.Equal(4, props.DurationLines)
	assert.Len(diags, 1)
	assert.Equal(1.5, diags[0].Q)
}

// tiedPair builds a two-note tie chain with the second note in a block that
// starts one quarter into the first measure.
func tiedPair() (*arena, model.Block) {
	a := &arena{}
	n0 := a.add(model.NotationNote{
		NoteEvent: model.NoteEvent{Start: 0, Length: 1, Pitch: 60},
		TiedFrom:  model.NoNote,
		TiedTo:    model.NoNote,
	})
	n1 := a.add(model.NotationNote{
		NoteEvent: model.NoteEvent{Start: 1, Length: 1, Pitch: 60},
		TiedFrom:  n0,
		TiedTo:    model.NoNote,
	})
	a.at(n0).TiedTo = n1
	b := model.Block{
		Start:         1,
		Length:        1,
		Notes:         []model.NoteID{n1},
		MeasureNumber: 1.25,
	}
	return a, b
}

func TestContinuationDashEligible(t *testing.T) {
	idx := timeline.Build(nil, nil, nil, 8)
	a, b := tiedPair()
	assert.True(t, continuationDash(&b, idx, a))
}

func TestContinuationDashIneligible(t *testing.T) {
	idx := timeline.Build(nil, nil, nil, 8)
	assert := assert.New(t)

	// a measure-initial block repeats the number instead
	a, b := tiedPair()
	b.MeasureNumber = 2.0
	assert.False(continuationDash(&b, idx, a))

	// no incoming tie
	a, b = tiedPair()
	a.at(b.Notes[0]).TiedFrom = model.NoNote
	assert.False(continuationDash(&b, idx, a))

	// predecessor longer than one beat
	a, b = tiedPair()
	a.at(model.NoteID(0)).Length = 2
	assert.False(continuationDash(&b, idx, a))

	// continuation shorter than a quarter
	a, b = tiedPair()
	a.at(b.Notes[0]).Length = 0.5
	assert.False(continuationDash(&b, idx, a))

	// chords never draw the dash
	a, b = tiedPair()
	extra := a.add(model.NotationNote{
		NoteEvent: model.NoteEvent{Start: 1, Length: 1, Pitch: 64},
		TiedFrom:  model.NoNote,
		TiedTo:    model.NoNote,
	})
	b.Notes = append(b.Notes, extra)
	assert.False(continuationDash(&b, idx, a))
}

func TestContinuationDashForwardTie(t *testing.T) {
	idx := timeline.Build(nil, nil, nil, 12)
	assert := assert.New(t)

	addSucc := func(a *arena, b *model.Block, start, length float64) {
		succ := a.add(model.NotationNote{
			NoteEvent: model.NoteEvent{Start: start, Length: length, Pitch: 60},
			TiedFrom:  b.Notes[0],
			TiedTo:    model.NoNote,
		})
		a.at(b.Notes[0]).TiedTo = succ
	}

	// a forward tie staying in the measure keeps the dash
	a, b := tiedPair()
	addSucc(a, &b, 2, 1)
	assert.True(continuationDash(&b, idx, a))

	// one crossing into the next measure suppresses it
	a, b = tiedPair()
	addSucc(a, &b, 4, 1)
	assert.False(continuationDash(&b, idx, a))

	// so does a short continuation after this block
	a, b = tiedPair()
	addSucc(a, &b, 2, 0.5)
	assert.False(continuationDash(&b, idx, a))
}
