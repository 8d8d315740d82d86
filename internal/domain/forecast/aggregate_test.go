package forecast

import (
	"testing"
	"time"
)

func ts(day int, hour int) int64 {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC).Unix()
}

func TestAggregate_EmptyInput(t *testing.T) {
	if got := Aggregate(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
	if got := Aggregate([]Sample{}); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestAggregate_SingleDay(t *testing.T) {
	samples := []Sample{
		{Timestamp: ts(1, 0), TempMin: 10, TempMax: 15, Humidity: 80, WindSpeed: 3, Pop: 0.1, Condition: Condition{ID: 800, Icon: "01d"}},
		{Timestamp: ts(1, 3), TempMin: 8, TempMax: 14, Humidity: 70, WindSpeed: 4, Pop: 0.2, Condition: Condition{ID: 500, Icon: "10d"}},
		{Timestamp: ts(1, 6), TempMin: 9, TempMax: 18, Humidity: 60, WindSpeed: 2, Pop: 0.0, Condition: Condition{ID: 801, Icon: "02d"}},
	}

	days := Aggregate(samples)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}

	day := days[0]
	if day.TempMin != 8 {
		t.Errorf("expected temp_min 8, got %v", day.TempMin)
	}
	if day.TempMax != 18 {
		t.Errorf("expected temp_max 18, got %v", day.TempMax)
	}
	if day.Humidity != 60 {
		t.Errorf("expected humidity from last sample (60), got %d", day.Humidity)
	}
	if day.WindSpeed != 2 {
		t.Errorf("expected wind speed from last sample (2), got %v", day.WindSpeed)
	}
	if day.Pop != 0.0 {
		t.Errorf("expected pop from last sample (0.0), got %v", day.Pop)
	}
	if day.Condition.ID != 801 || day.Condition.Icon != "02d" {
		t.Errorf("expected condition from last sample, got %+v", day.Condition)
	}
	if day.Timestamp != ts(1, 0) {
		t.Errorf("expected timestamp anchored at first sample, got %d", day.Timestamp)
	}
}

func TestAggregate_MultipleDaysKeepFirstSeenOrder(t *testing.T) {
	samples := []Sample{
		{Timestamp: ts(2, 21), TempMin: 5, TempMax: 7},
		{Timestamp: ts(3, 0), TempMin: 4, TempMax: 6},
		{Timestamp: ts(3, 3), TempMin: 3, TempMax: 9},
		{Timestamp: ts(4, 0), TempMin: 1, TempMax: 2},
	}

	days := Aggregate(samples)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}

	wantKeys := []string{"2026-03-02", "2026-03-03", "2026-03-04"}
	for i, want := range wantKeys {
		if got := days[i].DayKey(); got != want {
			t.Errorf("day %d: expected key %s, got %s", i, want, got)
		}
	}

	if days[1].TempMin != 3 || days[1].TempMax != 9 {
		t.Errorf("expected day 2 range [3, 9], got [%v, %v]", days[1].TempMin, days[1].TempMax)
	}
}

func TestAggregate_CapsAtMaxDays(t *testing.T) {
	var samples []Sample
	for day := 1; day <= 8; day++ {
		samples = append(samples, Sample{Timestamp: ts(day, 12), TempMin: float64(day), TempMax: float64(day + 5)})
	}

	days := Aggregate(samples)
	if len(days) != MaxDays {
		t.Fatalf("expected %d days, got %d", MaxDays, len(days))
	}
	if got := days[MaxDays-1].DayKey(); got != "2026-03-05" {
		t.Errorf("expected last kept day 2026-03-05, got %s", got)
	}
}

func TestAggregate_LateSampleOfEarlyDayStillCounts(t *testing.T) {
	// A sample for an already-seen day arriving after the cap is reached
	// must still update that day's entry.
	var samples []Sample
	for day := 1; day <= 6; day++ {
		samples = append(samples, Sample{Timestamp: ts(day, 0), TempMin: 10, TempMax: 12})
	}
	samples = append(samples, Sample{Timestamp: ts(1, 21), TempMin: -2, TempMax: 20, Humidity: 99})

	days := Aggregate(samples)
	if len(days) != MaxDays {
		t.Fatalf("expected %d days, got %d", MaxDays, len(days))
	}
	if days[0].TempMin != -2 || days[0].TempMax != 20 {
		t.Errorf("expected first day range [-2, 20], got [%v, %v]", days[0].TempMin, days[0].TempMax)
	}
	if days[0].Humidity != 99 {
		t.Errorf("expected first day humidity 99, got %d", days[0].Humidity)
	}
}

func TestAggregate_DayBoundaryIsUTC(t *testing.T) {
	// 23:00 and next day 01:00 UTC fall on different calendar days even
	// though they are only two hours apart.
	samples := []Sample{
		{Timestamp: ts(1, 23), TempMin: 1, TempMax: 2},
		{Timestamp: ts(2, 1), TempMin: 3, TempMax: 4},
	}

	days := Aggregate(samples)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
}
