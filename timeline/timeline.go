// Package timeline builds a fixed-resolution lookup table answering "what
// tempo/key/time signature/measure position is active at quarter t". The
// table is uniformly spaced so every query is a direct index.
package timeline

import (
	"math"
	"sort"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
)

// NoChange is the sentinel returned by the onlyChanges query variants when
// nothing changed at the queried position.
const NoChange = -1

// NoTimeSig is the onlyChanges sentinel for TimeSignatureAtQ.
var NoTimeSig = model.TimeSig{}

// Chunk covers [Start, Start+Resolution) with the values active there.
// The integer part of MeasureNumber is the measure index counted from 1,
// the fractional part the position within the measure.
type Chunk struct {
	Start          float64
	MeasureNumber  float64
	MeasureLength  float64
	QPM            float64
	Key            int
	TimeSig        model.TimeSig
	TempoChanged   bool
	KeyChanged     bool
	TimeSigChanged bool
}

type Index struct {
	chunks []Chunk
	end    float64
}

// Build walks [0, end) in Resolution steps, advancing through the change
// lists whenever an event lies within half a step of the current position.
// Empty or non-zero-start lists are defaulted to 60 qpm, C major and 4/4.
// Measure numbering is rebased at every time-signature change so it stays
// continuous across changes.
func Build(tempos []model.TempoEvent, keys []model.KeyEvent, sigs []model.TimeSigEvent, end float64) *Index {
	tempos = normalizeTempos(tempos)
	keys = normalizeKeys(keys)
	sigs = normalizeTimeSigs(sigs)

	n := int(math.Ceil(end/constants.Resolution - constants.Tolerance))
	if n < 1 {
		n = 1
	}

	idx := &Index{
		chunks: make([]Chunk, 0, n),
		end:    end,
	}

	ti, ki, si := -1, -1, -1
	sigStart := 0.0
	baseMeasure := 1.0
	curSig := model.TimeSig{Numerator: constants.DefaultNumerator, Denominator: constants.DefaultDenominator}

	for i := 0; i < n; i++ {
		t := float64(i) * constants.Resolution
		c := Chunk{Start: t}

		for ti+1 < len(tempos) && tempos[ti+1].Start < t+constants.Resolution/2 {
			ti++
			c.TempoChanged = true
		}
		for ki+1 < len(keys) && keys[ki+1].Start < t+constants.Resolution/2 {
			ki++
			c.KeyChanged = true
		}
		for si+1 < len(sigs) && sigs[si+1].Start < t+constants.Resolution/2 {
			next := sigs[si+1]
			// Rebase the measure accumulator at the change point using the
			// measure length that was active up to it.
			baseMeasure += (next.Start - sigStart) / curSig.MeasureLength()
			sigStart = next.Start
			curSig = next.TimeSig()
			si++
			c.TimeSigChanged = true
		}

		c.QPM = tempos[ti].QPM
		c.Key = keys[ki].Key
		c.TimeSig = curSig
		c.MeasureLength = curSig.MeasureLength()
		c.MeasureNumber = baseMeasure + (t-sigStart)/c.MeasureLength
		idx.chunks = append(idx.chunks, c)
	}

	return idx
}

func normalizeTempos(events []model.TempoEvent) []model.TempoEvent {
	res := make([]model.TempoEvent, 0, len(events)+1)
	for _, e := range events {
		if e.QPM > 0 {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Start < res[j].Start })
	if len(res) == 0 || res[0].Start > 0 {
		res = append([]model.TempoEvent{{Start: 0, QPM: constants.DefaultQPM}}, res...)
	}
	return res
}

func normalizeKeys(events []model.KeyEvent) []model.KeyEvent {
	res := make([]model.KeyEvent, 0, len(events)+1)
	for _, e := range events {
		if e.Key >= 0 && e.Key < 12 {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Start < res[j].Start })
	if len(res) == 0 || res[0].Start > 0 {
		res = append([]model.KeyEvent{{Start: 0, Key: constants.DefaultKey}}, res...)
	}
	return res
}

func normalizeTimeSigs(events []model.TimeSigEvent) []model.TimeSigEvent {
	res := make([]model.TimeSigEvent, 0, len(events)+1)
	for _, e := range events {
		if e.Numerator > 0 && e.Denominator > 0 {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Start < res[j].Start })
	if len(res) == 0 || res[0].Start > 0 {
		def := model.TimeSigEvent{
			Start:       0,
			Numerator:   constants.DefaultNumerator,
			Denominator: constants.DefaultDenominator,
		}
		res = append([]model.TimeSigEvent{def}, res...)
	}
	return res
}

// chunkAt clamps t to the covered range and returns its chunk.
func (x *Index) chunkAt(t float64) *Chunk {
	i := int(math.Floor(t/constants.Resolution + constants.Tolerance))
	if i < 0 {
		i = 0
	}
	if i >= len(x.chunks) {
		i = len(x.chunks) - 1
	}
	return &x.chunks[i]
}

func (x *Index) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > x.end {
		return x.end
	}
	return t
}

func (x *Index) End() float64 {
	return x.end
}

// MeasureNumberAtQ returns the measure position at t; the integer part is
// the measure index from 1, the fraction the position within the measure.
func (x *Index) MeasureNumberAtQ(t float64) float64 {
	t = x.clamp(t)
	c := x.chunkAt(t)
	return c.MeasureNumber + (t-c.Start)/c.MeasureLength
}

func (x *Index) MeasureLengthAtQ(t float64) float64 {
	return x.chunkAt(x.clamp(t)).MeasureLength
}

// TempoAtQ returns the active quarters-per-minute rate. With onlyChanges it
// returns NoChange unless a tempo change is recorded at t's chunk.
func (x *Index) TempoAtQ(t float64, onlyChanges bool) float64 {
	c := x.chunkAt(x.clamp(t))
	if onlyChanges && !c.TempoChanged {
		return NoChange
	}
	return c.QPM
}

// KeySignatureAtQ returns the active major-key tonic (0-11). With
// onlyChanges it returns NoChange unless a key change is recorded at t.
func (x *Index) KeySignatureAtQ(t float64, onlyChanges bool) int {
	c := x.chunkAt(x.clamp(t))
	if onlyChanges && !c.KeyChanged {
		return NoChange
	}
	return c.Key
}

// TimeSignatureAtQ returns the active time signature. With onlyChanges it
// returns NoTimeSig unless a change is recorded at t.
func (x *Index) TimeSignatureAtQ(t float64, onlyChanges bool) model.TimeSig {
	c := x.chunkAt(x.clamp(t))
	if onlyChanges && !c.TimeSigChanged {
		return NoTimeSig
	}
	return c.TimeSig
}

// QuartersToTime converts a quarter span to seconds using the tempo active
// at atQ. Tempo changes strictly inside the converted span are not
// integrated.
func (x *Index) QuartersToTime(quarters, atQ float64) float64 {
	return quarters * 60 / x.TempoAtQ(atQ, false)
}

// TimeToQuarters converts seconds to quarters using the tempo active at atQ.
func (x *Index) TimeToQuarters(seconds, atQ float64) float64 {
	return seconds * x.TempoAtQ(atQ, false) / 60
}

// IsBeatStartAtQ reports whether t aligns with a beat boundary of the
// active time signature.
func (x *Index) IsBeatStartAtQ(t float64) bool {
	t = x.clamp(t)
	c := x.chunkAt(t)
	m := c.MeasureNumber + (t-c.Start)/c.MeasureLength
	pos := (m - math.Floor(m)) * c.MeasureLength
	beat := c.TimeSig.BeatLength()
	rem := math.Mod(pos, beat)
	return rem < beatTolerance || beat-rem < beatTolerance
}

// Beat alignment works on coarser positions than block identity does, so it
// gets a looser tolerance than constants.Tolerance.
const beatTolerance = 1e-4
