// Package midi loads standard MIDI files into the engine's Score input.
package midi

import (
	"bytes"
	"errors"
	"os"

	"github.com/flufy3d/jianpu/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadScore reads and flattens a MIDI file in one step.
func ReadScore(filepath string) (model.Score, error) {
	s, err := ReadFile(filepath)
	if err != nil {
		return model.Score{}, err
	}
	return ScoreFromSMF(s)
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.New("Error reading midi file... " + err.Error())
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.New("Error parsing midi file... " + err.Error())
	}

	return res, nil
}
