package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/sidereal"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15.39187, cfg.Latitude)
	assert.Equal(t, 73.88103, cfg.Longitude)
	assert.Equal(t, "Goa", cfg.Name)
	assert.Equal(t, "mean", cfg.Sidereal)
	assert.Equal(t, "legacy", cfg.RAPolicy)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, astro.DefaultObserver(), cfg.AstroObserver())
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALTAZ_LATITUDE", "35.4")
	t.Setenv("ALTAZ_LONGITUDE", "-116.9")
	t.Setenv("ALTAZ_SITE_NAME", "Goldstone")
	t.Setenv("ALTAZ_RA_POLICY", "uniform")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 35.4, cfg.Latitude)
	assert.Equal(t, -116.9, cfg.Longitude)
	assert.Equal(t, "Goldstone", cfg.Name)
	assert.Equal(t, "uniform", cfg.RAPolicy)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "observer.env")
	require.NoError(t, os.WriteFile(path, []byte("ALTAZ_LATITUDE=-33.9\nALTAZ_SIDEREAL=apparent\n"), 0o600))

	t.Setenv("ALTAZ_SIDEREAL", "mean") // environment wins over the file
	t.Cleanup(func() { os.Unsetenv("ALTAZ_LATITUDE") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, -33.9, cfg.Latitude)
	assert.Equal(t, "mean", cfg.Sidereal)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALTAZ_LATITUDE", "north")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestConverter(t *testing.T) {
	cfg := &Config{
		ObserverConfig: ObserverConfig{Latitude: 15.39187, Longitude: 73.88103},
		Sidereal:       "apparent",
		RAPolicy:       "uniform",
	}

	c, err := cfg.Converter(astro.WithSource(sidereal.Fixed(2)))
	require.NoError(t, err)
	assert.Equal(t, astro.RAPolicyUniform, c.Policy())

	// The explicit option overrides the configured source.
	f, err := c.Now()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.LST)
}

func TestConverter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad sidereal", Config{ObserverConfig: ObserverConfig{Latitude: 10}, Sidereal: "lunar"}},
		{"bad policy", Config{ObserverConfig: ObserverConfig{Latitude: 10}, RAPolicy: "mirror"}},
		{"bad latitude", Config{ObserverConfig: ObserverConfig{Latitude: 100}}},
		{"bad longitude", Config{ObserverConfig: ObserverConfig{Longitude: -190}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Converter()
			assert.ErrorIs(t, err, astro.ErrInvalidConfiguration)
		})
	}
}
