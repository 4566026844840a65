package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/sidereal"
)

func newFrame(t *testing.T, lst float64) astro.Frame {
	t.Helper()
	c, err := astro.NewConverter(astro.DefaultObserver())
	require.NoError(t, err)
	return c.WithLST(lst)
}

func TestRoundTrip_DemoScenario(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: 2, DecDeg: 50})

	require.NoError(t, r.Err())
	assert.InDelta(t, 90-(50-15.39187), r.Altitude.Value, 1e-9)
	assert.InDelta(t, 0, r.Azimuth.Value, 1e-9)
	assert.InDelta(t, 2, r.RightAscension.Value, 1e-4)
	assert.InDelta(t, 50, r.Declination.Value, 1e-4)
	assert.Equal(t, astro.RAPolicyLegacy, r.Policy)
}

func TestWriteText_DemoLayout(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: 2, DecDeg: 50})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r, Options{}))

	want := strings.Join([]string{
		"Current Local Sidereal Time = 2:0:0",
		"Altitude = 55.3919",
		"Azimuth = 0",
		"Right Ascension = 2",
		"Declination = 50",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteText_Sexagesimal(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: 2, DecDeg: 50})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r, Options{Sexagesimal: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "°")
	assert.Contains(t, lines[3], "ʰ")
}

func TestWriteText_Errors(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: math.NaN(), DecDeg: 50})

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrInvalidTrigonometricDomain))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r, Options{}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5, buf.String())
	assert.Equal(t, "Current Local Sidereal Time = 2:0:0", lines[0])

	prefixes := []string{
		"Altitude = error: ",
		"Azimuth = error: ",
		"Right Ascension = error: needs altitude and azimuth: ",
		"Declination = error: needs altitude and azimuth: ",
	}
	for i, prefix := range prefixes {
		assert.True(t, strings.HasPrefix(lines[i+1], prefix), "line %d = %q", i+1, lines[i+1])
	}
}

func TestResult_ErrIsSingleLine(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: math.NaN(), DecDeg: 50})

	err := r.Err()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "\n")
	assert.True(t, errors.Is(err, astro.ErrInvalidTrigonometricDomain))
	assert.Contains(t, err.Error(), "altitude: ")
	assert.Contains(t, err.Error(), "; declination: needs altitude and azimuth")

	assert.NotContains(t, r.RightAscension.Err.Error(), "\n")
	assert.NotContains(t, r.Declination.Err.Error(), "\n")
}

func TestResult_ErrNilOnSuccess(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: 2, DecDeg: 50})
	assert.Nil(t, r.Err())
}

func TestExportResult(t *testing.T) {
	c, err := astro.NewConverter(astro.DefaultObserver(),
		astro.WithSource(sidereal.Fixed(2)),
		astro.WithRAPolicy(astro.RAPolicyUniform),
	)
	require.NoError(t, err)

	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	f, err := c.At(at)
	require.NoError(t, err)

	r := RoundTrip(f, "Capella", astro.Equatorial{RAHours: 2, DecDeg: 50})

	var buf bytes.Buffer
	require.NoError(t, ExportResult(r).WriteJSON(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "2024-06-15T12:00:00Z", got["timestamp"])
	assert.Equal(t, "2:0:0", got["lst"])
	assert.Equal(t, "uniform", got["ra_policy"])
	assert.Equal(t, "Capella", got["target"])

	obs := got["observer"].(map[string]any)
	assert.Equal(t, "Goa", obs["name"])
	assert.InDelta(t, 15.39187, obs["latitude"], 1e-9)

	fields := got["fields"].([]any)
	require.Len(t, fields, 4)
	alt := fields[0].(map[string]any)
	assert.Equal(t, "Altitude", alt["name"])
	assert.Equal(t, "degrees", alt["unit"])
	assert.InDelta(t, 55.3919, alt["value"], 1e-9)
	ra := fields[2].(map[string]any)
	assert.Equal(t, "hours", ra["unit"])
	assert.InDelta(t, 2, ra["value"], 1e-9)
}

func TestExportResult_OmitsFailedValues(t *testing.T) {
	r := RoundTrip(newFrame(t, 2.0), "", astro.Equatorial{RAHours: 2, DecDeg: math.Inf(1)})
	export := ExportResult(r)

	assert.Nil(t, export.Timestamp)
	for _, fe := range export.Fields[1:] {
		assert.Nil(t, fe.Value, fe.Name)
		assert.NotEmpty(t, fe.Error, fe.Name)
	}
}
