package segment

import (
	"math"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/model"
)

// arena owns every NotationNote of one build. Notes refer to each other by
// NoteID instead of pointers, so tie chains survive copying and serialize
// cleanly.
type arena struct {
	notes []model.NotationNote
}

func (a *arena) add(n model.NotationNote) model.NoteID {
	a.notes = append(a.notes, n)
	return model.NoteID(len(a.notes) - 1)
}

func (a *arena) at(id model.NoteID) *model.NotationNote {
	return &a.notes[id]
}

func (a *arena) all() []model.NotationNote {
	return a.notes
}

// tick is a block key in fixed-point 64th-note units. Keying blocks by tick
// instead of comparing float starts eliminates float key collisions.
type tick int64

func toTick(q float64) tick {
	return tick(math.Round(q * constants.TicksPerQuarter))
}

// relinkTies moves the loser's tie links onto the winner, so a re-strike
// that drops a note keeps its chain intact.
func relinkTies(a *arena, winner, loser model.NoteID) {
	w, l := a.at(winner), a.at(loser)
	if l.TiedFrom != model.NoNote && w.TiedFrom == model.NoNote {
		w.TiedFrom = l.TiedFrom
		a.at(l.TiedFrom).TiedTo = winner
	}
	if l.TiedTo != model.NoNote && w.TiedTo == model.NoNote {
		w.TiedTo = l.TiedTo
		a.at(l.TiedTo).TiedFrom = winner
	}
	l.TiedFrom = model.NoNote
	l.TiedTo = model.NoNote
}

// addNoteToBlock inserts id, resolving same-pitch collisions: the shorter
// note wins (a re-strike truncates the earlier sustain) and inherits the
// loser's ties.
func addNoteToBlock(b *model.Block, id model.NoteID, a *arena) {
	n := a.at(id)
	for i, eid := range b.Notes {
		e := a.at(eid)
		if e.Pitch != n.Pitch {
			continue
		}
		if n.Length < e.Length {
			relinkTies(a, id, eid)
			b.Notes[i] = id
		} else {
			relinkTies(a, eid, id)
		}
		return
	}
	b.Notes = append(b.Notes, id)
}
