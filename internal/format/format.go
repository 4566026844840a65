// Package format renders converter values for display.
package format

import (
	"fmt"
	"math"
	"strconv"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// LST formats decimal hours as H:M:S. Each component is floored and none
// is zero padded, so 2.0041 hours prints as "2:0:14".
func LST(hours float64) string {
	raw := hours * 3600
	rem := math.Mod(raw, 3600)

	h := math.Floor(raw / 3600)
	m := math.Floor(rem / 60)
	s := math.Floor(math.Mod(rem, 60))

	return fmt.Sprintf("%d:%d:%d", int(h), int(m), int(s))
}

// Round4 rounds half up to four decimal places.
func Round4(x float64) float64 {
	return math.Floor(x*1e4+0.5) / 1e4
}

// Decimal formats x rounded to four decimals with the shortest
// representation, e.g. "55.3919" or "2".
func Decimal(x float64) string {
	r := Round4(x)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// RA formats decimal hours as sexagesimal hours, minutes, seconds. Zero
// leading segments are kept, so 0 prints as "0ʰ0ᵐ0.0ˢ".
func RA(hours float64, prec int) string {
	return fmt.Sprintf("%#.*s", prec, sexa.FmtRA(unit.RAFromHour(hours)))
}

// Angle formats decimal degrees as sexagesimal degrees, arcminutes,
// arcseconds, keeping zero leading segments.
func Angle(deg float64, prec int) string {
	return fmt.Sprintf("%#.*s", prec, sexa.FmtAngle(unit.AngleFromDeg(deg)))
}
