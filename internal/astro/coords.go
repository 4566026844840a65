// Package astro provides conversions between equatorial and horizontal
// coordinates for a ground observer.
package astro

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-altaz/internal/sidereal"
)

// Errors returned by the converter.
var (
	ErrInvalidTrigonometricDomain = errors.New("invalid trigonometric domain")
	ErrInvalidConfiguration       = errors.New("invalid configuration")
)

// domainTolerance is how far an asin argument may overshoot ±1 from
// rounding before it is treated as a domain error.
const domainTolerance = 1e-12

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// DefaultObserver returns the site used when nothing else is configured.
func DefaultObserver() Observer {
	return Observer{
		LatDeg: 15.39187, // 15° 23' 30.732"
		LonDeg: 73.88103, // 73° 52' 51.708"
		Name:   "Goa",
	}
}

// Validate reports ErrInvalidConfiguration if the location is not usable.
func (o Observer) Validate() error {
	if math.IsNaN(o.LatDeg) || o.LatDeg < -90 || o.LatDeg > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidConfiguration, o.LatDeg)
	}
	if err := sidereal.ValidateLongitude(o.LonDeg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// Equatorial is a position in right ascension and declination.
type Equatorial struct {
	RAHours float64 // Right Ascension in decimal hours
	DecDeg  float64 // Declination in decimal degrees
}

// Horizontal is a position in altitude and azimuth.
type Horizontal struct {
	AltDeg float64 // Altitude in degrees (0=horizon, 90=zenith)
	AzDeg  float64 // Azimuth in degrees, [0, 360)
}

// RAPolicy selects how RightAscension turns the recovered hour angle into
// a right ascension.
type RAPolicy int

const (
	// RAPolicyLegacy returns LST+HA for negative hour angles and LST-HA
	// otherwise. Objects east of the meridian come back as 2·LST-RA.
	RAPolicyLegacy RAPolicy = iota

	// RAPolicyUniform always returns LST+HA wrapped to [0, 24).
	RAPolicyUniform
)

func (p RAPolicy) String() string {
	switch p {
	case RAPolicyLegacy:
		return "legacy"
	case RAPolicyUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// ParseRAPolicy parses "legacy" or "uniform".
func ParseRAPolicy(s string) (RAPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return RAPolicyLegacy, nil
	case "uniform":
		return RAPolicyUniform, nil
	default:
		return RAPolicyLegacy, fmt.Errorf("%w: unknown ra policy %q", ErrInvalidConfiguration, s)
	}
}

// Converter converts coordinates for a single observer. It is an immutable
// value and safe for concurrent use.
type Converter struct {
	obs    Observer
	src    sidereal.Source
	policy RAPolicy
	now    func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithSource sets the sidereal time source. The default is sidereal.Meeus
// in mean mode.
func WithSource(src sidereal.Source) Option {
	return func(c *Converter) {
		c.src = src
	}
}

// WithRAPolicy sets the right ascension inverse policy.
func WithRAPolicy(p RAPolicy) Option {
	return func(c *Converter) {
		c.policy = p
	}
}

// WithClock sets the clock used by Now and the convenience methods.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// NewConverter creates a converter for obs.
func NewConverter(obs Observer, opts ...Option) (Converter, error) {
	if err := obs.Validate(); err != nil {
		return Converter{}, err
	}

	c := Converter{
		obs:    obs,
		src:    sidereal.Meeus{Mode: sidereal.ModeMean},
		policy: RAPolicyLegacy,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.src == nil {
		return Converter{}, fmt.Errorf("%w: nil sidereal source", ErrInvalidConfiguration)
	}
	if c.now == nil {
		c.now = time.Now
	}

	return c, nil
}

// Observer returns the converter's observer.
func (c Converter) Observer() Observer {
	return c.obs
}

// Policy returns the right ascension inverse policy.
func (c Converter) Policy() RAPolicy {
	return c.policy
}

// WithPolicy returns a copy of c using policy p.
func (c Converter) WithPolicy(p RAPolicy) Converter {
	c.policy = p
	return c
}

// At computes the sidereal time for t once and returns a frame that reuses
// it for every conversion.
func (c Converter) At(t time.Time) (Frame, error) {
	lst, err := c.src.LST(t, c.obs.LonDeg)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: sidereal time: %w", ErrInvalidConfiguration, err)
	}
	if math.IsNaN(lst) || lst < 0 || lst >= 24 {
		return Frame{}, fmt.Errorf("%w: sidereal time %v outside [0, 24)", ErrInvalidConfiguration, lst)
	}

	return Frame{
		LST:    lst,
		Time:   t,
		obs:    c.obs,
		policy: c.policy,
	}, nil
}

// Now is At for the converter's clock.
func (c Converter) Now() (Frame, error) {
	return c.At(c.now())
}

// WithLST returns a frame for a caller-supplied sidereal time in hours.
func (c Converter) WithLST(hours float64) Frame {
	return Frame{
		LST:    hours,
		obs:    c.obs,
		policy: c.policy,
	}
}

// Altitude converts ra (hours) and dec (degrees) to altitude at the
// current time.
func (c Converter) Altitude(ra, dec float64) (float64, error) {
	f, err := c.Now()
	if err != nil {
		return 0, err
	}
	return f.Altitude(ra, dec)
}

// Azimuth converts ra (hours) and dec (degrees) to azimuth at the current
// time.
func (c Converter) Azimuth(ra, dec float64) (float64, error) {
	f, err := c.Now()
	if err != nil {
		return 0, err
	}
	return f.Azimuth(ra, dec)
}

// Declination converts alt and az (degrees) to declination. It does not
// depend on time.
func (c Converter) Declination(alt, az float64) (float64, error) {
	return c.WithLST(0).Declination(alt, az)
}

// RightAscension converts alt and az (degrees) to right ascension in hours
// at the current time.
func (c Converter) RightAscension(alt, az float64) (float64, error) {
	f, err := c.Now()
	if err != nil {
		return 0, err
	}
	return f.RightAscension(alt, az)
}

// Frame is a converter bound to one sidereal time snapshot.
type Frame struct {
	LST  float64   // Local Sidereal Time in decimal hours
	Time time.Time // Instant LST was computed for; zero when supplied directly

	obs    Observer
	policy RAPolicy
}

// Observer returns the frame's observer.
func (f Frame) Observer() Observer {
	return f.obs
}

// Policy returns the frame's right ascension inverse policy.
func (f Frame) Policy() RAPolicy {
	return f.policy
}

// HourAngle returns LST - ra in hours.
func (f Frame) HourAngle(ra float64) float64 {
	return f.LST - ra
}

// Altitude converts ra (hours) and dec (degrees) to altitude in degrees.
func (f Frame) Altitude(ra, dec float64) (float64, error) {
	lat := degToRad(f.obs.LatDeg)
	d := degToRad(dec)
	ha := degToRad(f.HourAngle(ra) * 15)

	alt, err := asin(math.Sin(lat)*math.Sin(d) + math.Cos(lat)*math.Cos(d)*math.Cos(ha))
	if err != nil {
		return 0, fmt.Errorf("altitude of ra=%v dec=%v: %w", ra, dec, err)
	}
	return radToDeg(alt), nil
}

// Azimuth converts ra (hours) and dec (degrees) to azimuth in degrees,
// in [0, 360).
func (f Frame) Azimuth(ra, dec float64) (float64, error) {
	lat := degToRad(f.obs.LatDeg)
	d := degToRad(dec)
	ha := degToRad(f.HourAngle(ra) * 15)

	x := -math.Sin(lat)*math.Cos(d)*math.Cos(ha) + math.Cos(lat)*math.Sin(d)
	y := math.Cos(d) * math.Sin(ha)

	az := -math.Atan2(y, x)
	if math.IsNaN(az) {
		return 0, fmt.Errorf("azimuth of ra=%v dec=%v: %w", ra, dec, ErrInvalidTrigonometricDomain)
	}

	return normalizeAzimuth(radToDeg(az)), nil
}

// Declination converts alt and az (degrees) to declination in degrees.
func (f Frame) Declination(alt, az float64) (float64, error) {
	lat := degToRad(f.obs.LatDeg)
	a := degToRad(alt)
	z := degToRad(az)

	dec, err := asin(math.Sin(lat)*math.Sin(a) + math.Cos(lat)*math.Cos(a)*math.Cos(z))
	if err != nil {
		return 0, fmt.Errorf("declination of alt=%v az=%v: %w", alt, az, err)
	}
	return radToDeg(dec), nil
}

// RightAscension converts alt and az (degrees) to right ascension in hours
// according to the frame's RAPolicy.
func (f Frame) RightAscension(alt, az float64) (float64, error) {
	lat := degToRad(f.obs.LatDeg)
	a := degToRad(alt)
	z := degToRad(az)

	x := -math.Sin(lat)*math.Cos(a)*math.Cos(z) + math.Cos(lat)*math.Sin(a)
	y := math.Cos(a) * math.Sin(z)

	ha := radToDeg(math.Atan2(y, x)) / 15
	if math.IsNaN(ha) {
		return 0, fmt.Errorf("right ascension of alt=%v az=%v: %w", alt, az, ErrInvalidTrigonometricDomain)
	}

	if f.policy == RAPolicyUniform {
		return sidereal.Wrap(f.LST + ha), nil
	}
	if ha < 0 {
		return f.LST + ha, nil
	}
	return f.LST - ha, nil
}

// Horizontal converts an equatorial position to altitude and azimuth.
func (f Frame) Horizontal(eq Equatorial) (Horizontal, error) {
	alt, err := f.Altitude(eq.RAHours, eq.DecDeg)
	if err != nil {
		return Horizontal{}, err
	}
	az, err := f.Azimuth(eq.RAHours, eq.DecDeg)
	if err != nil {
		return Horizontal{}, err
	}
	return Horizontal{AltDeg: alt, AzDeg: az}, nil
}

// Equatorial converts a horizontal position to right ascension and
// declination.
func (f Frame) Equatorial(hz Horizontal) (Equatorial, error) {
	ra, err := f.RightAscension(hz.AltDeg, hz.AzDeg)
	if err != nil {
		return Equatorial{}, err
	}
	dec, err := f.Declination(hz.AltDeg, hz.AzDeg)
	if err != nil {
		return Equatorial{}, err
	}
	return Equatorial{RAHours: ra, DecDeg: dec}, nil
}

// normalizeAzimuth adds 360 once to negative values. atan2 range is
// (-180, 180] so one addition always lands in [0, 360).
func normalizeAzimuth(az float64) float64 {
	if az < 0 {
		az += 360
		// -1e-14 + 360 rounds to 360
		if az >= 360 {
			return 0
		}
		return az
	}
	// atan2 yields -0 on the meridian
	if az == 0 {
		return 0
	}
	return az
}

// asin is math.Asin with rounding overshoot clamped and real domain
// violations reported.
func asin(x float64) (float64, error) {
	switch {
	case math.IsNaN(x):
		return 0, fmt.Errorf("%w: asin(NaN)", ErrInvalidTrigonometricDomain)
	case x > 1:
		if x-1 > domainTolerance {
			return 0, fmt.Errorf("%w: asin(%v)", ErrInvalidTrigonometricDomain, x)
		}
		x = 1
	case x < -1:
		if -1-x > domainTolerance {
			return 0, fmt.Errorf("%w: asin(%v)", ErrInvalidTrigonometricDomain, x)
		}
		x = -1
	}
	return math.Asin(x), nil
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
