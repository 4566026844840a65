// Command ls-altaz converts between equatorial (RA/Dec) and horizontal
// (Alt/Az) coordinates for an observer, using local sidereal time.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/config"
	"github.com/litescript/ls-altaz/internal/logging"
	"github.com/litescript/ls-altaz/internal/report"
	"github.com/litescript/ls-altaz/internal/sidereal"
	"github.com/litescript/ls-altaz/internal/ui"
	"github.com/litescript/ls-altaz/internal/version"
)

// CLI flags
var (
	raHours     float64
	decDeg      float64
	starName    string
	latDeg      float64
	lonDeg      float64
	atFlag      string
	lstFlag     string
	siderealArg string
	policyArg   string
	envFile     string
	logLevel    string
	sexaMode    bool
	jsonMode    bool
	watchMode   bool
	showVersion bool
)

// errFieldsFailed is returned by run when the report holds a failed field.
var errFieldsFailed = errors.New("one or more conversions failed")

func newFlagSet(handling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSet("ls-altaz", handling)
	fs.Float64Var(&raHours, "ra", 2, "Right Ascension in decimal hours")
	fs.Float64Var(&decDeg, "dec", 50, "Declination in decimal degrees")
	fs.StringVar(&starName, "star", "", "Use a catalog star as the target (e.g. Vega)")
	fs.Float64Var(&latDeg, "lat", 0, "Observer latitude in degrees, north positive (overrides ALTAZ_LATITUDE)")
	fs.Float64Var(&lonDeg, "lon", 0, "Observer longitude in degrees, east positive (overrides ALTAZ_LONGITUDE)")
	fs.StringVar(&atFlag, "at", "", "Evaluate at an RFC 3339 instant instead of now")
	fs.StringVar(&lstFlag, "lst", "", "Use a fixed local sidereal time in decimal hours")
	fs.StringVar(&siderealArg, "sidereal", "", "Sidereal time: mean or apparent (overrides ALTAZ_SIDEREAL)")
	fs.StringVar(&policyArg, "ra-policy", "", "RA inverse policy: legacy or uniform (overrides ALTAZ_RA_POLICY)")
	fs.StringVar(&envFile, "env", "", "Load settings from this dotenv file instead of .env")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&sexaMode, "sexa", false, "Also print values in sexagesimal notation")
	fs.BoolVar(&jsonMode, "json", false, "Print the round trip as JSON")
	fs.BoolVar(&watchMode, "watch", false, "Show a live view that follows the sidereal clock")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	return fs
}

func main() {
	fs := newFlagSet(flag.ExitOnError)
	_ = fs.Parse(os.Args[1:])

	if showVersion {
		fmt.Println("ls-altaz", version.Version)
		return
	}

	if err := run(fs, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one invocation with the flags already parsed into fs.
func run(fs *flag.FlagSet, stdout, stderr io.Writer) error {
	logger := logging.New(logging.LevelInfo)
	logger.SetOutput(stderr)
	log := logger.Named("main")

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	applyFlags(fs, cfg)
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	var opts []astro.Option
	if lstFlag != "" {
		lst, err := strconv.ParseFloat(strings.TrimSpace(lstFlag), 64)
		if err != nil {
			return fmt.Errorf("%w: --lst %q: %w", astro.ErrInvalidConfiguration, lstFlag, err)
		}
		opts = append(opts, astro.WithSource(sidereal.Fixed(lst)))
	}

	conv, err := cfg.Converter(opts...)
	if err != nil {
		return err
	}
	if log.Enabled(logging.LevelDebug) {
		obs := conv.Observer()
		log.Debug("observer %q lat=%v lon=%v sidereal=%s policy=%s",
			obs.Name, obs.LatDeg, obs.LonDeg, cfg.Sidereal, conv.Policy())
	}

	name, target, err := resolveTarget()
	if err != nil {
		return err
	}

	if watchMode {
		return watch(conv, name, target, cfg.Refresh, logger, stderr)
	}

	at := time.Now()
	if atFlag != "" {
		at, err = time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return fmt.Errorf("--at %q: %w", atFlag, err)
		}
	}

	frame, err := conv.At(at)
	if err != nil {
		return err
	}
	log.Debug("lst=%v at %s", frame.LST, at.UTC().Format(time.RFC3339))

	result := report.RoundTrip(frame, name, target)

	if jsonMode {
		if err := report.ExportResult(result).WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	} else {
		textOpts := report.Options{Color: isTerminal(stdout), Sexagesimal: sexaMode}
		if err := report.WriteText(stdout, result, textOpts); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if err := result.Err(); err != nil {
		log.Warn("round trip incomplete: %v", err)
		return errFieldsFailed
	}
	return nil
}

// watch runs the live view. Log lines are held back while the TUI owns the
// screen and written to stderr once it exits.
func watch(conv astro.Converter, name string, target astro.Equatorial, refresh time.Duration, logger *logging.Logger, stderr io.Writer) error {
	var held bytes.Buffer
	logger.SetOutput(&held)
	defer func() {
		logger.SetOutput(stderr)
		_, _ = held.WriteTo(stderr)
	}()

	logger.Named("main").Info("watching %q every %s", name, refresh)

	model := ui.New(conv, name, target, refresh).WithLogger(logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			cfg.Latitude = latDeg
			cfg.Name = ""
		case "lon":
			cfg.Longitude = lonDeg
			cfg.Name = ""
		case "sidereal":
			cfg.Sidereal = siderealArg
		case "ra-policy":
			cfg.RAPolicy = policyArg
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
}

func resolveTarget() (string, astro.Equatorial, error) {
	if starName == "" {
		return "", astro.Equatorial{RAHours: raHours, DecDeg: decDeg}, nil
	}
	star, ok := astro.LookupStar(starName)
	if !ok {
		return "", astro.Equatorial{}, fmt.Errorf("unknown star %q", starName)
	}
	return star.Name, star.Equatorial(), nil
}
