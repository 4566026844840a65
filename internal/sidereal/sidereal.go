// Package sidereal provides Local Sidereal Time sources.
package sidereal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	meeus "github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// ErrInvalidLongitude is returned when a longitude is not finite or lies
// outside [-180, 180] degrees.
var ErrInvalidLongitude = errors.New("invalid longitude")

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown sidereal mode")

// Source computes Local Sidereal Time in decimal hours, in [0, 24), for an
// instant and an observer longitude (degrees, east positive).
type Source interface {
	LST(t time.Time, lonDeg float64) (float64, error)
}

// Mode selects between mean and apparent Greenwich sidereal time.
type Mode int

const (
	ModeMean Mode = iota
	ModeApparent
)

func (m Mode) String() string {
	switch m {
	case ModeMean:
		return "mean"
	case ModeApparent:
		return "apparent"
	default:
		return "unknown"
	}
}

// ParseMode parses "mean" or "apparent".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean":
		return ModeMean, nil
	case "apparent":
		return ModeApparent, nil
	default:
		return ModeMean, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Meeus computes sidereal time with the algorithms from Meeus,
// "Astronomical Algorithms", chapter 12.
type Meeus struct {
	Mode Mode
}

// LST implements Source.
func (m Meeus) LST(t time.Time, lonDeg float64) (float64, error) {
	if err := ValidateLongitude(lonDeg); err != nil {
		return 0, err
	}

	jd := julian.TimeToJD(t.UTC())

	var gst unit.Time
	if m.Mode == ModeApparent {
		gst = meeus.Apparent(jd)
	} else {
		gst = meeus.Mean(jd)
	}

	return Wrap(gst.Hour() + lonDeg/15), nil
}

// Fixed is a Source that always reports the same LST, regardless of time
// and longitude.
type Fixed float64

// LST implements Source.
func (f Fixed) LST(time.Time, float64) (float64, error) {
	return Wrap(float64(f)), nil
}

// Func adapts an ordinary function to a Source.
type Func func(t time.Time, lonDeg float64) (float64, error)

// LST implements Source.
func (f Func) LST(t time.Time, lonDeg float64) (float64, error) {
	return f(t, lonDeg)
}

// ValidateLongitude reports ErrInvalidLongitude for non-finite values or
// values outside [-180, 180].
func ValidateLongitude(lonDeg float64) error {
	if math.IsNaN(lonDeg) || math.IsInf(lonDeg, 0) || lonDeg < -180 || lonDeg > 180 {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, lonDeg)
	}
	return nil
}

// Wrap maps decimal hours into [0, 24).
func Wrap(hours float64) float64 {
	h := unit.PMod(hours, 24)
	// PMod can return y itself for tiny negative inputs.
	if h >= 24 {
		h = 0
	}
	return h
}
