// Package crs converts coordinates between the WGS84, GCJ02 and BD09
// reference systems used by map providers in and outside mainland China.
package crs

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// CRS names a coordinate reference system.
type CRS string

const (
	WGS84 CRS = "WGS84"
	GCJ02 CRS = "GCJ02"
	BD09  CRS = "BD09"
)

// ErrUnknownCRS is returned by Parse for identifiers outside the supported set.
var ErrUnknownCRS = errors.New("unknown coordinate reference system")

// All lists the supported systems.
var All = []CRS{WGS84, GCJ02, BD09}

// Parse maps an identifier to a CRS. Matching is case-sensitive.
func Parse(s string) (CRS, error) {
	for _, c := range All {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCRS, s)
}

// Func converts a single longitude/latitude pair.
type Func func(lng, lat float64) (float64, float64)

type pair struct {
	from, to CRS
}

var conversions = map[pair]Func{
	{WGS84, GCJ02}: WGS84ToGCJ02,
	{WGS84, BD09}:  WGS84ToBD09,
	{GCJ02, WGS84}: GCJ02ToWGS84,
	{GCJ02, BD09}:  GCJ02ToBD09,
	{BD09, WGS84}:  BD09ToWGS84,
	{BD09, GCJ02}:  BD09ToGCJ02,
}

// Lookup returns the conversion between two systems. It returns false for
// pairs without a conversion, including from == to.
func Lookup(from, to CRS) (Func, bool) {
	fn, ok := conversions[pair{from, to}]
	return fn, ok
}

// TransformCoord converts lng/lat from one system to another. Identical
// systems return the input; unsupported pairs are logged and return the input.
func TransformCoord(lng, lat float64, from, to CRS) (float64, float64) {
	if from == to {
		return lng, lat
	}

	fn, ok := Lookup(from, to)
	if !ok {
		log.Warn().
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("Unsupported coordinate conversion, keeping input")
		return lng, lat
	}

	return fn(lng, lat)
}

// Krasovsky 1940 ellipsoid parameters of the GCJ02 offset model. They are
// variables so that derived values are computed in float64 arithmetic.
var (
	semiMajorAxis = 6378245.0
	eccentricity2 = 0.00669342162296594323

	pi  = math.Pi
	xPi = pi * 3000.0 / 180.0
)

// China bounding box used by OutOfChina.
const (
	chinaMinLng = 72.004
	chinaMaxLng = 137.8347
	chinaMinLat = 0.8293
	chinaMaxLat = 55.8271
)

// OutOfChina reports whether the coordinate lies outside the area where the
// GCJ02 offset applies.
func OutOfChina(lng, lat float64) bool {
	return lng < chinaMinLng || lng > chinaMaxLng || lat < chinaMinLat || lat > chinaMaxLat
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320.0*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLng(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// offset returns the forward GCJ02 shift at lng/lat.
func offset(lng, lat float64) (dLng, dLat float64) {
	dLat = transformLat(lng-105.0, lat-35.0)
	dLng = transformLng(lng-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - eccentricity2*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((semiMajorAxis * (1 - eccentricity2)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (semiMajorAxis / sqrtMagic * math.Cos(radLat) * math.Pi)
	return dLng, dLat
}

// WGS84ToGCJ02 applies the GCJ02 offset. Points outside China are returned as is.
func WGS84ToGCJ02(lng, lat float64) (float64, float64) {
	if OutOfChina(lng, lat) {
		return lng, lat
	}
	dLng, dLat := offset(lng, lat)
	return lng + dLng, lat + dLat
}

// GCJ02ToWGS84 reflects the forward offset through the input. It is a
// first-order approximation; round trips keep an error around 1e-6 degrees.
func GCJ02ToWGS84(lng, lat float64) (float64, float64) {
	if OutOfChina(lng, lat) {
		return lng, lat
	}
	dLng, dLat := offset(lng, lat)
	mgLng, mgLat := lng+dLng, lat+dLat
	return lng*2 - mgLng, lat*2 - mgLat
}

// GCJ02ToBD09 applies the BD09 polar perturbation.
func GCJ02ToBD09(lng, lat float64) (float64, float64) {
	z := math.Sqrt(lng*lng+lat*lat) + 0.00002*math.Sin(lat*xPi)
	theta := math.Atan2(lat, lng) + 0.000003*math.Cos(lng*xPi)
	return z*math.Cos(theta) + 0.0065, z*math.Sin(theta) + 0.006
}

// BD09ToGCJ02 removes the BD09 polar perturbation.
func BD09ToGCJ02(lng, lat float64) (float64, float64) {
	x := lng - 0.0065
	y := lat - 0.006
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*xPi)
	return z * math.Cos(theta), z * math.Sin(theta)
}

// WGS84ToBD09 converts through GCJ02.
func WGS84ToBD09(lng, lat float64) (float64, float64) {
	return GCJ02ToBD09(WGS84ToGCJ02(lng, lat))
}

// BD09ToWGS84 converts through GCJ02.
func BD09ToWGS84(lng, lat float64) (float64, float64) {
	return GCJ02ToWGS84(BD09ToGCJ02(lng, lat))
}
