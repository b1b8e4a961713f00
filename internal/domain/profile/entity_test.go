package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWorkDays(t *testing.T) {
	days := DefaultWorkDays()
	require.Len(t, days, 7)

	for _, key := range []string{"mon", "tue", "wed", "thu", "fri"} {
		assert.True(t, days[key].Active, key)
		assert.Equal(t, ModeOffice, days[key].Mode, key)
	}
	assert.False(t, days["sat"].Active)
	assert.False(t, days["sun"].Active)
}

func TestWorkDays_ValueScan(t *testing.T) {
	days := WorkDays{
		"mon": {Active: true, Mode: ModeOffice},
		"tue": {Active: true, Mode: ModeHome},
		"sat": {Active: false, Mode: ModeOffice},
	}

	value, err := days.Value()
	require.NoError(t, err)

	var scanned WorkDays
	require.NoError(t, scanned.Scan(value))

	assert.Equal(t, days, scanned)
}

func TestWorkDays_ScanNil(t *testing.T) {
	var days WorkDays
	require.NoError(t, days.Scan(nil))
	assert.Nil(t, days)
}

func TestWorkDays_NilValue(t *testing.T) {
	var days WorkDays
	value, err := days.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestShiftWindow_Defaults(t *testing.T) {
	var p Profile
	start, end := p.ShiftWindow()
	assert.Equal(t, DefaultStartTime, start)
	assert.Equal(t, DefaultEndTime, end)

	p.StartTime = "08:30"
	p.EndTime = "17:30"
	start, end = p.ShiftWindow()
	assert.Equal(t, "08:30", start)
	assert.Equal(t, "17:30", end)
}
