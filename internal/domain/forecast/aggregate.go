package forecast

import "time"

// MaxDays is the number of daily entries a dashboard forecast carries.
const MaxDays = 5

// Condition is the weather condition snapshot attached to a sample.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Sample is one raw 3-hour-resolution forecast observation as returned by
// the provider. Samples are immutable inputs to the aggregation.
type Sample struct {
	Timestamp int64     `json:"dt"`
	Temp      float64   `json:"temp"`
	TempMin   float64   `json:"temp_min"`
	TempMax   float64   `json:"temp_max"`
	Humidity  int       `json:"humidity"`
	WindSpeed float64   `json:"speed"`
	Pop       float64   `json:"pop"`
	Condition Condition `json:"weather"`
}

// Daily is the reduced one-per-calendar-day forecast entry.
type Daily struct {
	// Timestamp anchors the entry at the first sample seen for the day.
	Timestamp int64     `json:"dt"`
	TempMin   float64   `json:"temp_min"`
	TempMax   float64   `json:"temp_max"`
	Humidity  int       `json:"humidity"`
	WindSpeed float64   `json:"speed"`
	Pop       float64   `json:"pop"`
	Condition Condition `json:"weather"`
}

// Aggregate reduces a time-ordered sequence of 3-hour samples to at most
// MaxDays daily entries, one per distinct calendar day, ordered by first
// occurrence in the input.
//
// Per day: temp_min is the running minimum and temp_max the running maximum
// over the day's samples; humidity, wind speed, precipitation probability and
// the condition snapshot come from the last sample seen for that day. No
// field is ever averaged. The input is not re-sorted.
//
// Day keys are derived by truncating the sample epoch to a UTC calendar date.
func Aggregate(samples []Sample) []Daily {
	if len(samples) == 0 {
		return nil
	}

	index := make(map[string]int, MaxDays)
	days := make([]Daily, 0, MaxDays)

	for _, sample := range samples {
		key := dayKey(sample.Timestamp)

		i, seen := index[key]
		if !seen {
			index[key] = len(days)
			days = append(days, Daily{
				Timestamp: sample.Timestamp,
				TempMin:   sample.TempMin,
				TempMax:   sample.TempMax,
				Humidity:  sample.Humidity,
				WindSpeed: sample.WindSpeed,
				Pop:       sample.Pop,
				Condition: sample.Condition,
			})
			continue
		}

		day := &days[i]
		if sample.TempMin < day.TempMin {
			day.TempMin = sample.TempMin
		}
		if sample.TempMax > day.TempMax {
			day.TempMax = sample.TempMax
		}
		day.Humidity = sample.Humidity
		day.WindSpeed = sample.WindSpeed
		day.Pop = sample.Pop
		day.Condition = sample.Condition
	}

	if len(days) > MaxDays {
		days = days[:MaxDays]
	}
	return days
}

// DayKey returns the UTC calendar date a daily entry belongs to, in
// YYYY-MM-DD form. Views use it to line forecast entries up with dates.
func (d Daily) DayKey() string {
	return dayKey(d.Timestamp)
}

func dayKey(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("2006-01-02")
}
