package midi

import (
	"testing"

	"github.com/flufy3d/jianpu/model"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestScoreFromSMF(t *testing.T) {
	clock := smf.MetricTicks(960)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, smf.MetaMeter(3, 4))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(960, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOn(0, 64, 90))
	tr.Add(480, gomidi.NoteOff(0, 64))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)

	sc, err := ScoreFromSMF(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.NoteEvent{
		{Start: 0, Length: 1, Pitch: 60, Intensity: 100},
		{Start: 1, Length: 0.5, Pitch: 64, Intensity: 90},
	}, sc.Notes)
	assert.Equal([]model.TempoEvent{{Start: 0, QPM: 120}}, sc.Tempos)
	assert.Equal([]model.TimeSigEvent{{Start: 0, Numerator: 3, Denominator: 4}}, sc.TimeSigs)
}

func TestScoreFromSMFClosesHangingNotes(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 62, 80))
	tr.Close(960)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	s.Add(tr)

	sc, err := ScoreFromSMF(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.NoteEvent{
		{Start: 0, Length: 1, Pitch: 62, Intensity: 80},
	}, sc.Notes)
}

func TestScoreFromSMFIgnoresDanglingNoteOffs(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOff(0, 60))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	s.Add(tr)

	sc, err := ScoreFromSMF(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.NoteEvent{
		{Start: 0, Length: 0.5, Pitch: 60, Intensity: 100},
	}, sc.Notes)
}

func TestScoreFromSMFRejectsTimeCode(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.TimeCode{FramesPerSecond: 25, SubFrames: 40}

	_, err := ScoreFromSMF(s)
	assert.Error(t, err)
}
