package segment

import (
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/util"
)

// blockSet collects final fragments keyed by their start tick. Beat and
// symbol splitting can each emit a boundary at the same instant; merging by
// tick keeps one block per start.
type blockSet struct {
	byTick map[tick]int
	blocks []model.Block
}

func newBlockSet() *blockSet {
	return &blockSet{byTick: make(map[tick]int)}
}

func (s *blockSet) merge(b model.Block, a *arena) {
	k := toTick(b.Start)
	i, ok := s.byTick[k]
	if !ok {
		s.byTick[k] = len(s.blocks)
		s.blocks = append(s.blocks, b)
		return
	}
	existing := &s.blocks[i]
	for _, id := range b.Notes {
		addNoteToBlock(existing, id, a)
	}
	existing.BeatBegin = existing.BeatBegin || b.BeatBegin
	existing.BeatEnd = existing.BeatEnd || b.BeatEnd
}

func (s *blockSet) sorted() []model.Block {
	out := make([]model.Block, 0, len(s.blocks))
	for _, k := range util.GetKeysSorted(s.byTick) {
		out = append(out, s.blocks[s.byTick[k]])
	}
	return out
}
