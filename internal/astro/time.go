package astro

import (
	"math"
	"time"
)

// J2000 is the Julian date of the standard epoch J2000.0.
const J2000 = 2451545.0

// JulianDay returns the Julian date for a UTC instant.
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())
	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction.
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// GMST returns Greenwich Mean Sidereal Time in degrees for a Julian date.
// IAU 1982 expression.
func GMST(jd float64) float64 {
	T := (jd - J2000) / 36525.0
	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0
	return Wrap360(gmst)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees for a
// Julian date (IAU 1980 polynomial).
func MeanObliquity(jd float64) float64 {
	T := (jd - J2000) / 36525.0
	return 23.439291111 - 0.013004167*T - 0.000000164*T*T + 0.000000504*T*T*T
}
