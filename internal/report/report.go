// Package report runs the equatorial/horizontal round trip and writes it
// as text or JSON.
package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-altaz/internal/astro"
	"github.com/litescript/ls-altaz/internal/format"
)

// Unit is the unit a field value is expressed in.
type Unit string

const (
	UnitHours   Unit = "hours"
	UnitDegrees Unit = "degrees"
)

// Field is one computed value of the round trip.
type Field struct {
	Name  string
	Value float64
	Unit  Unit
	Err   error
}

// Result is a complete round trip computed against a single LST.
type Result struct {
	Observer astro.Observer
	Time     time.Time // Zero when the LST was supplied directly
	LST      float64
	Policy   astro.RAPolicy
	Target   string // Star name, if the input came from the catalog
	Input    astro.Equatorial

	Altitude       Field
	Azimuth        Field
	RightAscension Field
	Declination    Field
}

// RoundTrip converts in to altitude and azimuth, then converts those back
// to right ascension and declination, all with f's LST. Failures are kept
// per field.
func RoundTrip(f astro.Frame, target string, in astro.Equatorial) Result {
	r := Result{
		Observer:       f.Observer(),
		Time:           f.Time,
		LST:            f.LST,
		Policy:         f.Policy(),
		Target:         target,
		Input:          in,
		Altitude:       Field{Name: "Altitude", Unit: UnitDegrees},
		Azimuth:        Field{Name: "Azimuth", Unit: UnitDegrees},
		RightAscension: Field{Name: "Right Ascension", Unit: UnitHours},
		Declination:    Field{Name: "Declination", Unit: UnitDegrees},
	}

	r.Altitude.Value, r.Altitude.Err = f.Altitude(in.RAHours, in.DecDeg)
	r.Azimuth.Value, r.Azimuth.Err = f.Azimuth(in.RAHours, in.DecDeg)

	if err := cmp.Or(r.Altitude.Err, r.Azimuth.Err); err != nil {
		skipped := fmt.Errorf("needs altitude and azimuth: %w", err)
		r.RightAscension.Err = skipped
		r.Declination.Err = skipped
		return r
	}

	r.RightAscension.Value, r.RightAscension.Err = f.RightAscension(r.Altitude.Value, r.Azimuth.Value)
	r.Declination.Value, r.Declination.Err = f.Declination(r.Altitude.Value, r.Azimuth.Value)
	return r
}

// Fields returns the computed fields in print order.
func (r Result) Fields() []Field {
	return []Field{r.Altitude, r.Azimuth, r.RightAscension, r.Declination}
}

// Err joins every field error, or returns nil. The joined message is a
// single line with fields separated by "; ".
func (r Result) Err() error {
	var errs fieldErrors
	for _, fld := range r.Fields() {
		if fld.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", strings.ToLower(fld.Name), fld.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type fieldErrors []error

func (e fieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e fieldErrors) Unwrap() []error {
	return e
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	sexaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// Options controls text output.
type Options struct {
	Color       bool // Style output with lipgloss
	Sexagesimal bool // Append a sexagesimal rendering of each value
}

// WriteText writes the round trip in the demo layout, values rounded to
// four decimals. Failed fields print as "<Name> = error: <message>".
func WriteText(w io.Writer, r Result, opts Options) error {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	var sb strings.Builder
	sb.WriteString(style(labelStyle, "Current Local Sidereal Time"))
	sb.WriteString(" = ")
	sb.WriteString(style(valueStyle, format.LST(r.LST)))
	sb.WriteString("\n")

	for _, fld := range r.Fields() {
		sb.WriteString(style(labelStyle, fld.Name))
		sb.WriteString(" = ")

		if fld.Err != nil {
			// one line per field, whatever the error text holds
			msg := strings.ReplaceAll(fld.Err.Error(), "\n", "; ")
			sb.WriteString(style(errorStyle, "error: "+msg))
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(style(valueStyle, format.Decimal(fld.Value)))
		if opts.Sexagesimal {
			sb.WriteString("  ")
			sb.WriteString(style(sexaStyle, sexagesimal(fld)))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func sexagesimal(fld Field) string {
	if fld.Unit == UnitHours {
		return format.RA(fld.Value, 1)
	}
	return format.Angle(fld.Value, 1)
}

// Export is the JSON-serializable representation of a Result.
type Export struct {
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Observer  ObserverExport `json:"observer"`
	LSTHours  float64        `json:"lst_hours"`
	LST       string         `json:"lst"`
	RAPolicy  string         `json:"ra_policy"`
	Target    string         `json:"target,omitempty"`
	Input     InputExport    `json:"input"`
	Fields    []FieldExport  `json:"fields"`
}

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InputExport is the equatorial input of the round trip.
type InputExport struct {
	RAHours float64 `json:"ra_hours"`
	DecDeg  float64 `json:"dec_degrees"`
}

// FieldExport is a JSON-friendly field. Value is omitted on error.
type FieldExport struct {
	Name  string   `json:"name"`
	Unit  Unit     `json:"unit"`
	Value *float64 `json:"value,omitempty"`
	Error string   `json:"error,omitempty"`
}

// ExportResult converts a Result to its exportable form.
func ExportResult(r Result) *Export {
	export := &Export{
		Observer: ObserverExport{
			Name:      r.Observer.Name,
			Latitude:  r.Observer.LatDeg,
			Longitude: r.Observer.LonDeg,
		},
		LSTHours: format.Round4(r.LST),
		LST:      format.LST(r.LST),
		RAPolicy: r.Policy.String(),
		Target:   r.Target,
		Input: InputExport{
			RAHours: r.Input.RAHours,
			DecDeg:  r.Input.DecDeg,
		},
	}
	if !r.Time.IsZero() {
		ts := r.Time.UTC()
		export.Timestamp = &ts
	}

	for _, fld := range r.Fields() {
		fe := FieldExport{Name: fld.Name, Unit: fld.Unit}
		if fld.Err != nil {
			fe.Error = fld.Err.Error()
		} else {
			v := format.Round4(fld.Value)
			fe.Value = &v
		}
		export.Fields = append(export.Fields, fe)
	}

	return export
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
