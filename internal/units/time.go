package units

import (
	"strings"

	"github.com/pkg/errors"
)

// Elapsed is a time offset from the start of a recording.
type Elapsed struct {
	seconds float64
}

func NewElapsedSeconds(value float64) Elapsed {
	return Elapsed{value}
}

func NewElapsedMinutes(value float64) Elapsed {
	return Elapsed{value * 60.0}
}

func NewElapsedHours(value float64) Elapsed {
	return Elapsed{value * 3600.0}
}

func (e Elapsed) Seconds() float64 {
	return e.seconds
}

func (e Elapsed) Minutes() float64 {
	return e.seconds / 60.0
}

// Hours goes through minutes so that values match a minutes series
// divided by 60.
func (e Elapsed) Hours() float64 {
	return e.Minutes() / 60.0
}

// Get returns the value in the named unit.
func (e Elapsed) Get(unit string) (float64, error) {
	u, err := ParseTimeUnit(unit)
	if err != nil {
		return 0, err
	}
	switch u {
	case Minutes:
		return e.Minutes(), nil
	case Hours:
		return e.Hours(), nil
	}
	return e.Seconds(), nil
}

// TimeUnit selects how elapsed time is expressed on an axis.
type TimeUnit int

const (
	Seconds TimeUnit = iota
	Minutes
	Hours
)

func (u TimeUnit) String() string {
	switch u {
	case Minutes:
		return "Minutes"
	case Hours:
		return "Hours"
	}
	return "Seconds"
}

// ParseTimeUnit accepts the long names used by the front ends and the
// usual short forms.
func ParseTimeUnit(unit string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "s", "sec", "secs", "second", "seconds":
		return Seconds, nil
	case "m", "min", "mins", "minute", "minutes":
		return Minutes, nil
	case "h", "hr", "hrs", "hour", "hours":
		return Hours, nil
	}
	return Seconds, errors.Errorf("unknown time unit %q", unit)
}
