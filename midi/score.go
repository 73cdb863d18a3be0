package midi

import (
	"errors"

	"github.com/flufy3d/jianpu/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteOn struct {
	startQ   float64
	velocity uint8
}

// ScoreFromSMF flattens an SMF into the engine's input: note events in
// quarters plus the tempo/key/time-signature change lists found in any
// track. Only metric (ticks per quarter) time formats are supported.
func ScoreFromSMF(s *smf.SMF) (model.Score, error) {
	var sc model.Score

	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return sc, errors.New("unsupported SMF time format (not metric ticks)")
	}
	tpq := float64(mt)

	for _, track := range s.Tracks {
		var absTicks int64
		pressed := make(map[uint8]noteOn)
		for _, event := range track {
			absTicks += int64(event.Delta)
			q := float64(absTicks) / tpq

			var channel uint8
			var key uint8
			var velocity uint8
			var bpm float64
			var num, denom, cpt, dsqpq uint8
			var k smf.Key
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				pressed[key] = noteOn{startQ: q, velocity: velocity}
			case event.Message.GetNoteEnd(&channel, &key):
				on, held := pressed[key]
				if !held {
					continue
				}
				delete(pressed, key)
				if q <= on.startQ {
					continue
				}
				sc.Notes = append(sc.Notes, model.NoteEvent{
					Start:     on.startQ,
					Length:    q - on.startQ,
					Pitch:     key,
					Intensity: on.velocity,
				})
			case event.Message.GetMetaTempo(&bpm):
				sc.Tempos = append(sc.Tempos, model.TempoEvent{Start: q, QPM: bpm})
			case event.Message.GetMetaTimeSig(&num, &denom, &cpt, &dsqpq):
				sc.TimeSigs = append(sc.TimeSigs, model.TimeSigEvent{
					Start:       q,
					Numerator:   int(num),
					Denominator: int(denom),
				})
			case event.Message.GetMetaKey(&k):
				// only major keys are modeled
				if k.IsMajor {
					sc.Keys = append(sc.Keys, model.KeyEvent{Start: q, Key: int(k.Key) % 12})
				}
			}
		}

		// close anything still sounding at track end
		endQ := float64(absTicks) / tpq
		for key, on := range pressed {
			if endQ > on.startQ {
				sc.Notes = append(sc.Notes, model.NoteEvent{
					Start:     on.startQ,
					Length:    endQ - on.startQ,
					Pitch:     key,
					Intensity: on.velocity,
				})
			}
		}
	}

	return sc, nil
}
