// Package segment turns a flat, unordered note collection into the ordered
// block sequence a jianpu renderer draws: chords and rests cut to standard
// symbol lengths at beat and measure boundaries, with tie chains preserving
// the duration of every split note.
package segment

import (
	"fmt"
	"math"
	"sort"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/pitch"
	"github.com/flufy3d/jianpu/timeline"
	"github.com/flufy3d/jianpu/util"
)

type Options struct {
	// AllowDottedRests admits dotted symbol lengths for rest blocks, not
	// just for blocks holding real notes.
	AllowDottedRests bool
}

func DefaultOptions() Options {
	return Options{AllowDottedRests: true}
}

// Build segments score with default options. A build never fails: malformed
// notes are dropped or clamped and reported through the result's
// diagnostics.
func Build(score model.Score) *Result {
	return BuildWithOptions(score, DefaultOptions())
}

func BuildWithOptions(score model.Score, opts Options) *Result {
	var diags []model.Diagnostic

	notes := normalizeNotes(score.Notes, &diags)
	end := scoreEnd(score, notes)
	idx := timeline.Build(score.Tempos, score.Keys, score.TimeSigs, end)

	a := &arena{}
	blocks := group(notes, idx, a, &diags)
	blocks = splitStructural(blocks, idx, a, opts, &diags)
	blocks = computeRenderProps(blocks, idx, a, &diags)

	return &Result{
		blocks: blocks,
		notes:  a.all(),
		diags:  diags,
		idx:    idx,
		end:    end,
	}
}

// normalizeNotes drops malformed notes, snaps the rest onto the 64th-note
// grid and orders them by start, then pitch. Live input carries raw
// millisecond timings, so off-grid starts are the norm there, and every
// downstream boundary (beat, measure, symbol) assumes grid-aligned spans.
func normalizeNotes(notes []model.NoteEvent, diags *[]model.Diagnostic) []model.NoteEvent {
	res := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if n.Start < 0 || n.Length <= 0 {
			*diags = append(*diags, model.Diagnostic{
				Q:       n.Start,
				Message: fmt.Sprintf("dropped malformed note: start %v, length %v", n.Start, n.Length),
			})
			continue
		}
		q := quantizeNote(n)
		if !approxEq(q.Start, n.Start) || !approxEq(q.Length, n.Length) {
			*diags = append(*diags, model.Diagnostic{
				Q:       n.Start,
				Message: fmt.Sprintf("note snapped to 64th grid: start %v -> %v, length %v -> %v", n.Start, q.Start, n.Length, q.Length),
			})
		}
		res = append(res, q)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Start != res[j].Start {
			return res[i].Start < res[j].Start
		}
		return res[i].Pitch < res[j].Pitch
	})
	return res
}

// quantizeNote rounds a note's start and end to the nearest tick, keeping at
// least one resolution step of length.
func quantizeNote(n model.NoteEvent) model.NoteEvent {
	start := float64(toTick(n.Start)) / constants.TicksPerQuarter
	length := float64(toTick(n.End()))/constants.TicksPerQuarter - start
	if length < constants.Resolution {
		length = constants.Resolution
	}
	n.Start = start
	n.Length = length
	return n
}

// scoreEnd derives the score end from the notes (or the explicit Length,
// whichever is later) and pads it up to the enclosing measure boundary so
// the trailing rest completes the final measure.
func scoreEnd(score model.Score, notes []model.NoteEvent) float64 {
	end := score.Length
	for _, n := range notes {
		end = util.Max(end, n.End())
	}
	if end <= 0 {
		return 0
	}
	idx := timeline.Build(score.Tempos, score.Keys, score.TimeSigs, end)
	m := idx.MeasureNumberAtQ(end)
	frac := m - math.Floor(m)
	if frac > constants.Tolerance && 1-frac > constants.Tolerance {
		end += (1 - frac) * idx.MeasureLengthAtQ(end)
	}
	return end
}

// group walks the sorted notes, collecting simultaneous starts into chord
// blocks and synthesizing rest blocks over every uncovered gap.
func group(notes []model.NoteEvent, idx *timeline.Index, a *arena, diags *[]model.Diagnostic) []model.Block {
	var blocks []model.Block
	covered := 0.0

	for _, ne := range notes {
		key := idx.KeySignatureAtQ(ne.Start, false)
		mp, err := pitch.Map(int(ne.Pitch), key)
		if err != nil {
			*diags = append(*diags, model.Diagnostic{
				Q:       ne.Start,
				Message: "pitch mapping fell back: " + err.Error(),
			})
		}
		id := a.add(model.NotationNote{
			NoteEvent:    ne,
			Degree:       mp.Degree,
			OctaveOffset: mp.OctaveOffset,
			Accidental:   mp.Accidental,
			TiedFrom:     model.NoNote,
			TiedTo:       model.NoNote,
		})

		if len(blocks) > 0 && toTick(ne.Start) == toTick(blocks[len(blocks)-1].Start) {
			cur := &blocks[len(blocks)-1]
			addNoteToBlock(cur, id, a)
			cur.Length = minNoteLength(cur, a)
		} else {
			if ne.Start > covered+constants.Tolerance {
				blocks = append(blocks, model.Block{Start: covered, Length: ne.Start - covered})
			} else if len(blocks) > 0 && ne.Start < covered-constants.Tolerance {
				// a new attack cuts short whatever is still sounding
				prev := &blocks[len(blocks)-1]
				prev.Length = ne.Start - prev.Start
			}
			blocks = append(blocks, model.Block{
				Start:  ne.Start,
				Length: ne.Length,
				Notes:  []model.NoteID{id},
			})
		}
		covered = blocks[len(blocks)-1].End()
	}

	if idx.End() > covered+constants.Tolerance {
		blocks = append(blocks, model.Block{Start: covered, Length: idx.End() - covered})
	}

	// one symbol per block: every note is held exactly as long as its block
	for i := range blocks {
		for _, id := range blocks[i].Notes {
			a.at(id).Length = blocks[i].Length
		}
	}
	return blocks
}

func minNoteLength(b *model.Block, a *arena) float64 {
	min := math.Inf(1)
	for _, id := range b.Notes {
		min = util.Min(min, a.at(id).Length)
	}
	return min
}

// splitStructural resolves every block into standard symbol lengths. Blocks
// run through a work queue so a split remainder is processed before later
// blocks; fragments merge into the final collection keyed by start tick.
func splitStructural(blocks []model.Block, idx *timeline.Index, a *arena, opts Options, diags *[]model.Diagnostic) []model.Block {
	queue := make([]model.Block, len(blocks))
	copy(queue, blocks)
	set := newBlockSet()

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if b.Length <= constants.Tolerance {
			continue
		}

		beatEndForced := false
		if cut, found := structuralCut(b, idx); found {
			if head, tail, ok := splitBlock(b, cut, a); ok {
				queue = append([]model.Block{tail}, queue...)
				b = head
				beatEndForced = true
			}
		}

		// consume the span into standard symbols, longest first
		for {
			if b.Length < constants.Resolution-constants.Tolerance {
				*diags = append(*diags, model.Diagnostic{
					Q:       b.Start,
					Message: fmt.Sprintf("duration %v below minimum resolution, clamped", b.Length),
				})
				setBlockLength(&b, constants.Resolution, a)
			}
			std := largestFit(symbolTable(opts, !b.IsRest()), b.Length)
			if b.Length <= std+constants.Tolerance {
				b.BeatBegin = idx.IsBeatStartAtQ(b.Start)
				b.BeatEnd = beatEndForced || idx.IsBeatStartAtQ(b.End())
				set.merge(b, a)
				break
			}
			head, tail, ok := splitBlock(b, b.Start+std, a)
			if !ok {
				set.merge(b, a)
				break
			}
			head.BeatBegin = idx.IsBeatStartAtQ(head.Start)
			head.BeatEnd = idx.IsBeatStartAtQ(head.End())
			set.merge(head, a)
			b = tail
		}
	}

	out := set.sorted()
	for i := range out {
		out[i].MeasureNumber = idx.MeasureNumberAtQ(out[i].Start)
	}
	return out
}

func setBlockLength(b *model.Block, length float64, a *arena) {
	b.Length = length
	for _, id := range b.Notes {
		a.at(id).Length = length
	}
}
