package astro

import "math"

// EclipticToEquatorial converts ecliptic longitude/latitude to right
// ascension/declination, all in degrees, for a given obliquity.
func EclipticToEquatorial(lonDeg, latDeg, obliquityDeg float64) (raDeg, decDeg float64) {
	lon := DegToRad(lonDeg)
	lat := DegToRad(latDeg)
	eps := DegToRad(obliquityDeg)

	sinDec := math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon)
	if sinDec > 1 {
		sinDec = 1
	} else if sinDec < -1 {
		sinDec = -1
	}
	decDeg = RadToDeg(math.Asin(sinDec))

	y := math.Sin(lon)*math.Cos(eps) - math.Tan(lat)*math.Sin(eps)
	x := math.Cos(lon)
	raDeg = Wrap360(RadToDeg(math.Atan2(y, x)))
	return raDeg, decDeg
}

// EquatorialToEcliptic converts right ascension/declination to ecliptic
// longitude/latitude, all in degrees, for a given obliquity.
func EquatorialToEcliptic(raDeg, decDeg, obliquityDeg float64) (lonDeg, latDeg float64) {
	ra := DegToRad(raDeg)
	dec := DegToRad(decDeg)
	eps := DegToRad(obliquityDeg)

	sinLat := math.Sin(dec)*math.Cos(eps) - math.Cos(dec)*math.Sin(eps)*math.Sin(ra)
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	latDeg = RadToDeg(math.Asin(sinLat))

	y := math.Sin(ra)*math.Cos(eps) + math.Tan(dec)*math.Sin(eps)
	x := math.Cos(ra)
	lonDeg = Wrap360(RadToDeg(math.Atan2(y, x)))
	return lonDeg, latDeg
}

// HorizonHourAngle returns the hour angle H0 (degrees, in [0,180]) at which a
// body of declination decDeg sits on the horizon for an observer at latDeg.
// ok is false where |tan(lat)*tan(dec)| > 1: the body is circumpolar or never
// rises at that latitude and there is no horizon crossing.
func HorizonHourAngle(latDeg, decDeg float64) (h0Deg float64, ok bool) {
	arg := -math.Tan(DegToRad(latDeg)) * math.Tan(DegToRad(decDeg))
	if arg > 1 || arg < -1 {
		return 0, false
	}
	return RadToDeg(math.Acos(arg)), true
}

// Ascendant returns the ecliptic longitude (degrees, [0,360)) rising on the
// eastern horizon for a local sidereal time, geographic latitude, and
// obliquity. RAMC is the local sidereal time expressed in degrees.
func Ascendant(lstDeg, latDeg, obliquityDeg float64) float64 {
	ramc := DegToRad(lstDeg)
	lat := DegToRad(latDeg)
	eps := DegToRad(obliquityDeg)

	y := math.Cos(ramc)
	x := -(math.Sin(ramc)*math.Cos(eps) + math.Tan(lat)*math.Sin(eps))
	return Wrap360(RadToDeg(math.Atan2(y, x)))
}
