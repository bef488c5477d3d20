package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableDays_EveryWeekdaySubset(t *testing.T) {
	references := []time.Time{
		time.Date(2024, 6, 13, 15, 42, 0, 0, time.UTC),
		time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 25, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	for _, ref := range references {
		for mask := 0; mask < 1<<7; mask++ {
			var set WeekdaySet
			for d := 0; d < 7; d++ {
				set[d] = mask&(1<<d) != 0
			}

			got := AvailableDays(set, ref)

			seen := make(map[string]bool)
			for i, day := range got {
				assert.True(t, set.Has(day.Weekday()), "mask %b returned %s", mask, day.Weekday())
				key := day.Format("2006-01-02")
				assert.False(t, seen[key], "duplicate %s", key)
				seen[key] = true
				if i > 0 {
					assert.True(t, got[i-1].Before(day), "dates out of order")
				}
			}

			start := StartOfDay(ref)
			for i := 0; i < HorizonDays; i++ {
				day := start.AddDate(0, 0, i)
				if set.Has(day.Weekday()) {
					assert.True(t, seen[day.Format("2006-01-02")], "mask %b missing %s", mask, day.Format("2006-01-02"))
				}
			}
		}
	}
}

func TestAvailableDays_HorizonBounds(t *testing.T) {
	today := time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC) // Monday
	all := NewWeekdaySet(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)

	got := AvailableDays(all, today)

	require.Len(t, got, HorizonDays)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), got[HorizonDays-1])
}

func TestAvailableDays_DefaultMatchesWeekdays(t *testing.T) {
	today := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)

	empty, _ := ParseServiceDays("")
	explicit, _ := ParseServiceDays("mon,tue,wed,thu,fri")

	assert.Equal(t, AvailableDays(explicit, today), AvailableDays(empty, today))
	assert.Len(t, AvailableDays(empty, today), 15)
}

func TestAvailableDays_NoValidTokensIsEmpty(t *testing.T) {
	set, _ := ParseServiceDays("holiday,never")

	assert.Empty(t, AvailableDays(set, time.Now()))
}

func TestAvailableDays_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is the spring DST change in New York
	today := time.Date(2024, 3, 8, 18, 0, 0, 0, loc)
	got := AvailableDays(NewWeekdaySet(time.Sunday, time.Monday), today)

	require.NotEmpty(t, got)
	for _, d := range got {
		assert.Equal(t, loc, d.Location())
		assert.Equal(t, 0, d.Hour())
	}
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), got[0])
}

func TestIsAvailableDay(t *testing.T) {
	today := time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC) // Thursday
	set := NewWeekdaySet(time.Friday)

	assert.True(t, IsAvailableDay(set, today, time.Date(2024, 6, 14, 16, 0, 0, 0, time.UTC)))
	assert.False(t, IsAvailableDay(set, today, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsAvailableDay(set, today, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)), "beyond horizon")
	assert.False(t, IsAvailableDay(set, today, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)), "in the past")
}
