package segment

import (
	"math"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/timeline"
)

// standardLengths is the descending table of symbol lengths in quarters.
// Dotted values are 6, 3, 1.5, 0.75 and 0.375.
var standardLengths = []float64{6, 4, 3, 2, 1.5, 1, 0.75, 0.5, 0.375, 0.25, 0.125, 0.0625}

// undottedLengths is the table used for rest blocks when dotted rests are
// disabled.
var undottedLengths = []float64{4, 2, 1, 0.5, 0.25, 0.125, 0.0625}

func symbolTable(opts Options, hasNotes bool) []float64 {
	if opts.AllowDottedRests || hasNotes {
		return standardLengths
	}
	return undottedLengths
}

// largestFit returns the longest table entry not exceeding length. The
// caller guarantees length >= the table's smallest entry.
func largestFit(table []float64, length float64) float64 {
	for _, l := range table {
		if l <= length+constants.Tolerance {
			return l
		}
	}
	return table[len(table)-1]
}

// splitBlock cuts b at q. The head keeps b's start, every note crossing q is
// shortened and continued by a tied successor note starting at q. A cut not
// strictly inside b's span is a no-op and reported through ok.
func splitBlock(b model.Block, q float64, a *arena) (head, tail model.Block, ok bool) {
	if q <= b.Start+constants.Tolerance || q >= b.End()-constants.Tolerance {
		return b, model.Block{}, false
	}

	head = b
	head.Length = q - b.Start
	head.Notes = make([]model.NoteID, 0, len(b.Notes))
	tail = model.Block{Start: q, Length: b.End() - q}

	for _, id := range b.Notes {
		n := a.at(id)
		succ := model.NotationNote{
			NoteEvent: model.NoteEvent{
				Start:     q,
				Length:    n.End() - q,
				Pitch:     n.Pitch,
				Intensity: n.Intensity,
			},
			Degree:       n.Degree,
			OctaveOffset: n.OctaveOffset,
			Accidental:   n.Accidental,
			TiedFrom:     id,
			TiedTo:       n.TiedTo,
		}
		sid := a.add(succ)
		n = a.at(id) // add may have grown the arena
		if n.TiedTo != model.NoNote {
			a.at(n.TiedTo).TiedFrom = sid
		}
		n.TiedTo = sid
		n.Length = q - n.Start
		head.Notes = append(head.Notes, id)
		tail.Notes = append(tail.Notes, sid)
	}
	return head, tail, true
}

// structuralCut finds the earliest beat or measure boundary strictly inside
// b's span. A block starting on a beat may span beats freely up to the
// measure end; a block starting off the beat is cut at the next beat.
func structuralCut(b model.Block, idx *timeline.Index) (float64, bool) {
	m := idx.MeasureNumberAtQ(b.Start)
	mlen := idx.MeasureLengthAtQ(b.Start)
	measureStart := b.Start - (m-math.Floor(m))*mlen
	measureEnd := measureStart + mlen
	end := b.End()

	cut := 0.0
	found := false
	if !idx.IsBeatStartAtQ(b.Start) {
		beat := idx.TimeSignatureAtQ(b.Start, false).BeatLength()
		k := math.Floor((b.Start-measureStart)/beat+constants.Tolerance) + 1
		nextBeat := measureStart + k*beat
		if nextBeat > b.Start+constants.Tolerance && nextBeat < end-constants.Tolerance {
			cut, found = nextBeat, true
		}
	}
	if measureEnd < end-constants.Tolerance && (!found || measureEnd < cut) {
		cut, found = measureEnd, true
	}
	return cut, found
}
