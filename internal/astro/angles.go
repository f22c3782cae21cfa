// Package astro provides the spherical-astronomy primitives the line
// generators are built on: angle normalization, Julian dates, sidereal time,
// obliquity, and frame transforms between ecliptic and equatorial coordinates.
package astro

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Wrap360 normalizes an angle to [0, 360).
func Wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// WrapLongitude normalizes a longitude to [-180, 180]. The operation is
// idempotent: applying it twice yields the same value.
func WrapLongitude(deg float64) float64 {
	deg = Wrap360(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// ClampLatitude bounds a latitude to [-90, 90].
func ClampLatitude(deg float64) float64 {
	if deg > 90 {
		return 90
	}
	if deg < -90 {
		return -90
	}
	return deg
}

// WrapSigned maps an angular difference to (-180, 180].
func WrapSigned(deg float64) float64 {
	deg = Wrap360(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// AngularSeparation returns the separation between two points on the
// celestial sphere, in degrees. Haversine form, stable for small angles.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	r1 := DegToRad(ra1)
	d1 := DegToRad(dec1)
	r2 := DegToRad(ra2)
	d2 := DegToRad(dec2)

	dRA := r2 - r1
	dDec := d2 - d1
	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(d1)*math.Cos(d2)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}
	return RadToDeg(2 * math.Asin(math.Sqrt(a)))
}
