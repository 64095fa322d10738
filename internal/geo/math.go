package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Coordinate bounds in degrees.
const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// FractionDigits returns the number of digits after the decimal point in the
// shortest decimal form of v. Integral values have zero.
func FractionDigits(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// ValidLongitude reports whether lon lies in [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= MinLongitude && lon <= MaxLongitude
}

// ValidLatitude reports whether lat lies in [-90, 90].
func ValidLatitude(lat float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude
}

// RingClosed reports whether the first and last coordinates of r are identical.
func RingClosed(r orb.Ring) bool {
	if len(r) == 0 {
		return false
	}
	return r[0] == r[len(r)-1]
}
