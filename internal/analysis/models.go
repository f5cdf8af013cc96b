package analysis

import "github.com/wjgoarxiv/dwspapyrus_go/internal/units"

// ChannelSelection picks the pressure and temperature sensors and the
// divisors that turn their raw readings into engineering units.
type ChannelSelection struct {
	PressureChannel    int     // 1 or 2
	TemperatureChannel int     // 1 to 4
	PressureDivisor    float64 // > 0
	TemperatureDivisor float64 // > 0; raw temperatures are tenths of a degree
}

const (
	MaxPressureChannel    = 2
	MaxTemperatureChannel = 4
)

// DefaultSelection is channel 1 for both sensors with divisors 1 and 10.
func DefaultSelection() ChannelSelection {
	return ChannelSelection{
		PressureChannel:    1,
		TemperatureChannel: 1,
		PressureDivisor:    1,
		TemperatureDivisor: 10,
	}
}

// DerivedSeries holds the converted samples. All slices have the same
// length and index i refers to the same logger row in each.
type DerivedSeries struct {
	TimeSeconds []float64
	TimeMinutes []float64
	Pressure    []float64
	Temperature []float64
}

// Len is the number of samples.
func (s *DerivedSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.TimeSeconds)
}

// Time returns elapsed time in unit. Hours are derived from minutes.
func (s *DerivedSeries) Time(unit units.TimeUnit) []float64 {
	if s == nil {
		return nil
	}
	switch unit {
	case units.Minutes:
		return s.TimeMinutes
	case units.Hours:
		out := make([]float64, len(s.TimeSeconds))
		for i, sec := range s.TimeSeconds {
			out[i] = units.NewElapsedSeconds(sec).Hours()
		}
		return out
	}
	return s.TimeSeconds
}

// SummaryStats is the mean and sample standard deviation (n-1) of a series.
type SummaryStats struct {
	Mean   float64
	StdDev float64
	N      int
}

// Extraction is everything derived from one RawTable and ChannelSelection.
type Extraction struct {
	Selection   ChannelSelection
	Series      DerivedSeries
	Pressure    SummaryStats
	Temperature SummaryStats
}
