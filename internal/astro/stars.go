package astro

import "strings"

// Star is a cataloged bright star.
type Star struct {
	Name    string
	RAHours float64 // J2000 Right Ascension in decimal hours
	DecDeg  float64 // J2000 Declination in decimal degrees
	Mag     float64 // Apparent visual magnitude
}

// Equatorial returns the star's catalog position.
func (s Star) Equatorial() Equatorial {
	return Equatorial{RAHours: s.RAHours, DecDeg: s.DecDeg}
}

// Stars returns the built-in catalog, brightest first. The slice is a copy.
func Stars() []Star {
	out := make([]Star, len(brightStars))
	copy(out, brightStars)
	return out
}

// LookupStar finds a star by name, ignoring case and surrounding space.
func LookupStar(name string) (Star, bool) {
	name = strings.TrimSpace(name)
	for _, s := range brightStars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// brightStars holds navigational stars from the Yale Bright Star Catalog,
// ordered roughly by magnitude.
var brightStars = []Star{
	{"Sirius", 6.7525, -16.716, -1.46},
	{"Canopus", 6.3992, -52.696, -0.74},
	{"Arcturus", 14.2610, 19.182, -0.05},
	{"Vega", 18.6157, 38.784, 0.03},
	{"Capella", 5.2781, 45.998, 0.08},
	{"Rigel", 5.2423, -8.202, 0.13},
	{"Procyon", 7.6551, 5.225, 0.34},
	{"Achernar", 1.6286, -57.237, 0.46},
	{"Betelgeuse", 5.9195, 7.407, 0.50},
	{"Hadar", 14.0637, -60.373, 0.61},
	{"Altair", 19.8464, 8.868, 0.76},
	{"Acrux", 12.4433, -63.099, 0.76},
	{"Aldebaran", 4.5987, 16.509, 0.85},
	{"Antares", 16.4901, -26.432, 0.96},
	{"Spica", 13.4199, -11.161, 0.97},
	{"Pollux", 7.7553, 28.026, 1.14},
	{"Fomalhaut", 22.9609, -29.622, 1.16},
	{"Deneb", 20.6905, 45.280, 1.25},
	{"Mimosa", 12.7953, -59.689, 1.25},
	{"Regulus", 10.1395, 11.967, 1.35},
	{"Adhara", 6.9771, -28.972, 1.50},
	{"Castor", 7.5767, 31.889, 1.58},
	{"Shaula", 17.5601, -37.104, 1.63},
	{"Bellatrix", 5.4189, 6.350, 1.64},
	{"Alnilam", 5.6035, -1.202, 1.69},
	{"Alioth", 12.9005, 55.960, 1.77},
	{"Dubhe", 11.0621, 61.751, 1.79},
	{"Mirfak", 3.4054, 49.861, 1.79},
	{"Alkaid", 13.7923, 49.313, 1.86},
	{"Polaris", 2.5303, 89.264, 2.02},
	{"Alphard", 9.4598, -8.659, 2.00},
	{"Hamal", 2.1195, 23.463, 2.00},
	{"Mizar", 13.3987, 54.925, 2.04},
	{"Alpheratz", 0.1398, 29.091, 2.06},
	{"Kochab", 14.8451, 74.156, 2.08},
	{"Algol", 3.1361, 40.957, 2.12},
	{"Denebola", 11.8177, 14.572, 2.13},
	{"Alphecca", 15.5781, 26.715, 2.23},
	{"Enif", 21.7364, 9.875, 2.39},
	{"Markab", 23.0793, 15.205, 2.49},
	{"Schedar", 0.6751, 56.537, 2.23},
	{"Thuban", 14.0731, 64.376, 3.65},
	{"Albireo", 19.5120, 27.960, 3.18},
	{"Alcyone", 3.7914, 24.105, 2.87},
}
