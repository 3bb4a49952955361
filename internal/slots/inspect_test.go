package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

func TestInspect_CleanSchedule(t *testing.T) {
	week := schedule(t,
		domain.DayAvailability{Day: domain.Monday, Enabled: true, Slots: []domain.TimeRange{rng("09:00", "12:00"), rng("12:00", "18:00")}},
		domain.DayAvailability{Day: domain.Friday, Enabled: true, Slots: []domain.TimeRange{rng("10:00", "14:00")}},
	)

	assert.Empty(t, Inspect(week))
}

func TestInspect_InvalidRanges(t *testing.T) {
	week := schedule(t, domain.DayAvailability{
		Day: domain.Tuesday, Enabled: true,
		Slots: []domain.TimeRange{rng("12:00", "10:00"), rng("", "10:00"), rng("10:00", "11:00")},
	})

	warnings := Inspect(week)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, domain.Tuesday, w.Day)
		assert.Equal(t, WarningInvalidRange, w.Kind)
		assert.Nil(t, w.Other)
		assert.NotEmpty(t, w.Message)
	}
	assert.Equal(t, rng("12:00", "10:00"), warnings[0].Range)
}

func TestInspect_OverlappingRanges(t *testing.T) {
	week := schedule(t, domain.DayAvailability{
		Day: domain.Wednesday, Enabled: true,
		Slots: []domain.TimeRange{rng("10:00", "12:00"), rng("09:00", "11:00")},
	})

	warnings := Inspect(week)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningOverlappingRanges, warnings[0].Kind)
	assert.Equal(t, rng("10:00", "12:00"), warnings[0].Range)
	require.NotNil(t, warnings[0].Other)
	assert.Equal(t, rng("09:00", "11:00"), *warnings[0].Other)
}

func TestInspect_NestedRangeDetected(t *testing.T) {
	week := schedule(t, domain.DayAvailability{
		Day: domain.Thursday, Enabled: true,
		Slots: []domain.TimeRange{rng("09:00", "18:00"), rng("10:00", "11:00"), rng("12:00", "13:00")},
	})

	warnings := Inspect(week)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		require.NotNil(t, w.Other)
		assert.Equal(t, rng("09:00", "18:00"), *w.Other)
	}
}

func TestInspect_DisabledDayStillChecked(t *testing.T) {
	week := schedule(t, domain.DayAvailability{
		Day: domain.Sunday, Enabled: false,
		Slots: []domain.TimeRange{rng("18:00", "09:00")},
	})

	warnings := Inspect(week)

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.Sunday, warnings[0].Day)
}
