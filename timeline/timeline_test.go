package timeline

import (
	"testing"

	"github.com/flufy3d/jianpu/model"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsWhenListsAreEmpty(t *testing.T) {
	idx := Build(nil, nil, nil, 8)

	assert := assert.New(t)
	assert.Equal(60.0, idx.TempoAtQ(0, false))
	assert.Equal(0, idx.KeySignatureAtQ(0, false))
	assert.Equal(model.TimeSig{Numerator: 4, Denominator: 4}, idx.TimeSignatureAtQ(0, false))
	assert.Equal(4.0, idx.MeasureLengthAtQ(0))
}

func TestMeasureNumbers(t *testing.T) {
	idx := Build(nil, nil, nil, 8)

	cases := map[float64]float64{
		0:   1.0,
		1:   1.25,
		2:   1.5,
		4:   2.0,
		6:   2.5,
		7.5: 2.875,
	}

	assert := assert.New(t)
	for q, want := range cases {
		assert.InDelta(want, idx.MeasureNumberAtQ(q), 1e-9, "at %v", q)
	}
}

func TestTimeSignatureChangeRebasesMeasures(t *testing.T) {
	sigs := []model.TimeSigEvent{
		{Start: 0, Numerator: 4, Denominator: 4},
		{Start: 4, Numerator: 3, Denominator: 4},
	}
	idx := Build(nil, nil, sigs, 10)

	assert := assert.New(t)
	assert.InDelta(2.0, idx.MeasureNumberAtQ(4), 1e-9)
	assert.InDelta(3.0, idx.MeasureLengthAtQ(5), 1e-9)
	assert.InDelta(2.5, idx.MeasureNumberAtQ(5.5), 1e-9)
	assert.InDelta(3.0, idx.MeasureNumberAtQ(7), 1e-9)
}

func TestOnlyChangesSentinels(t *testing.T) {
	tempos := []model.TempoEvent{
		{Start: 0, QPM: 120},
		{Start: 4, QPM: 90},
	}
	keys := []model.KeyEvent{{Start: 0, Key: 7}}
	idx := Build(tempos, keys, nil, 8)

	assert := assert.New(t)
	assert.Equal(120.0, idx.TempoAtQ(0, true))
	assert.Equal(float64(NoChange), idx.TempoAtQ(2, true))
	assert.Equal(90.0, idx.TempoAtQ(4, true))
	assert.Equal(90.0, idx.TempoAtQ(6, false))

	assert.Equal(7, idx.KeySignatureAtQ(0, true))
	assert.Equal(NoChange, idx.KeySignatureAtQ(1, true))
	assert.Equal(7, idx.KeySignatureAtQ(1, false))

	assert.Equal(model.TimeSig{Numerator: 4, Denominator: 4}, idx.TimeSignatureAtQ(0, true))
	assert.Equal(NoTimeSig, idx.TimeSignatureAtQ(2, true))
}

func TestTimeConversions(t *testing.T) {
	tempos := []model.TempoEvent{{Start: 0, QPM: 120}}
	idx := Build(tempos, nil, nil, 8)

	assert := assert.New(t)
	assert.InDelta(1.0, idx.QuartersToTime(2, 0), 1e-9)
	assert.InDelta(2.0, idx.TimeToQuarters(1, 0), 1e-9)
}

func TestBeatStarts(t *testing.T) {
	sigs := []model.TimeSigEvent{{Start: 0, Numerator: 6, Denominator: 8}}
	idx := Build(nil, nil, sigs, 8)

	assert := assert.New(t)
	assert.True(idx.IsBeatStartAtQ(0))
	assert.True(idx.IsBeatStartAtQ(0.5))
	assert.True(idx.IsBeatStartAtQ(2.5))
	assert.False(idx.IsBeatStartAtQ(0.25))
	assert.False(idx.IsBeatStartAtQ(0.75))
}

func TestOutOfRangeQueriesClamp(t *testing.T) {
	tempos := []model.TempoEvent{
		{Start: 0, QPM: 120},
		{Start: 4, QPM: 90},
	}
	idx := Build(tempos, nil, nil, 8)

	assert := assert.New(t)
	assert.Equal(120.0, idx.TempoAtQ(-3, false))
	assert.Equal(90.0, idx.TempoAtQ(1000, false))
	assert.Equal(4.0, idx.MeasureLengthAtQ(-1))
}

func TestUnsortedListsAreNormalized(t *testing.T) {
	tempos := []model.TempoEvent{
		{Start: 4, QPM: 90},
		{Start: 0, QPM: 120},
	}
	idx := Build(tempos, nil, nil, 8)

	assert := assert.New(t)
	assert.Equal(120.0, idx.TempoAtQ(1, false))
	assert.Equal(90.0, idx.TempoAtQ(5, false))
}

func TestNonZeroStartListGetsDefaultHead(t *testing.T) {
	keys := []model.KeyEvent{{Start: 2, Key: 5}}
	idx := Build(nil, keys, nil, 8)

	assert := assert.New(t)
	assert.Equal(0, idx.KeySignatureAtQ(0, false))
	assert.Equal(5, idx.KeySignatureAtQ(2, false))
}
