package segment

import (
	"fmt"
	"math"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/timeline"
)

// computeRenderProps is the final pass: every block gets the underline
// count, augmentation dot/dash and continuation-dash flags a renderer needs.
func computeRenderProps(blocks []model.Block, idx *timeline.Index, a *arena, diags *[]model.Diagnostic) []model.Block {
	out := make([]model.Block, len(blocks))
	copy(out, blocks)
	for i := range out {
		b := &out[i]
		b.Render = classify(b, diags)
		if continuationDash(b, idx, a) {
			b.Render.ContinuationDash = true
		}
	}
	return out
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < constants.Tolerance
}

// classify picks the symbol for a block length. Dotted lengths carry one
// augmentation dot over their undotted base; everything else is classified
// by the largest standard base not exceeding the length. Dashes extend
// half/whole values and apply to note blocks only, never to rests.
func classify(b *model.Block, diags *[]model.Diagnostic) model.RenderProps {
	hasNotes := !b.IsRest()
	l := b.Length
	switch {
	case approxEq(l, 6) || approxEq(l, 3):
		return model.RenderProps{AugmentationDots: 1, AugmentationDash: hasNotes}
	case approxEq(l, 1.5):
		return model.RenderProps{AugmentationDots: 1}
	case approxEq(l, 0.75):
		return model.RenderProps{DurationLines: 1, AugmentationDots: 1}
	case approxEq(l, 0.375):
		return model.RenderProps{DurationLines: 2, AugmentationDots: 1}
	case l >= 4-constants.Tolerance:
		return model.RenderProps{AugmentationDash: hasNotes}
	case l >= 2-constants.Tolerance:
		return model.RenderProps{AugmentationDash: hasNotes}
	case l >= 1-constants.Tolerance:
		return model.RenderProps{}
	case l >= 0.5-constants.Tolerance:
		return model.RenderProps{DurationLines: 1}
	case l >= 0.25-constants.Tolerance:
		return model.RenderProps{DurationLines: 2}
	case l >= 0.125-constants.Tolerance:
		return model.RenderProps{DurationLines: 3}
	case l >= 0.0625-constants.Tolerance:
		return model.RenderProps{DurationLines: 4}
	default:
		*diags = append(*diags, model.Diagnostic{
			Q:       b.Start,
			Message: fmt.Sprintf("length %v shorter than a 64th, coerced", l),
		})
		return model.RenderProps{DurationLines: 4}
	}
}

// continuationDash reproduces the convention of drawing a trailing dash
// instead of repeating the number for a sustained same-pitch note of at
// least a beat's length. The eligibility conditions are deliberately kept
// exactly as tuned in practice: single note, not at a measure start, tied
// from a predecessor of exactly one beat unit, itself at least a quarter,
// and any forward tie staying in the measure at a quarter or more.
func continuationDash(b *model.Block, idx *timeline.Index, a *arena) bool {
	if len(b.Notes) != 1 || measureInitial(b.MeasureNumber) {
		return false
	}
	n := a.at(b.Notes[0])
	if n.TiedFrom == model.NoNote {
		return false
	}
	pred := a.at(n.TiedFrom)
	beat := idx.TimeSignatureAtQ(b.Start, false).BeatLength()
	if beat < 1 {
		beat = 1
	}
	if !approxEq(pred.Length, beat) || n.Length < 1-constants.Tolerance {
		return false
	}
	if n.TiedTo != model.NoNote {
		succ := a.at(n.TiedTo)
		if math.Floor(idx.MeasureNumberAtQ(succ.Start)) != math.Floor(b.MeasureNumber) {
			return false
		}
		if succ.Length < 1-constants.Tolerance {
			return false
		}
	}
	return true
}

func measureInitial(measureNumber float64) bool {
	frac := measureNumber - math.Floor(measureNumber)
	return frac < constants.Tolerance || 1-frac < constants.Tolerance
}
