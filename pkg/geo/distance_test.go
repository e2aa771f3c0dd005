package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_Symmetric(t *testing.T) {
	ab := Haversine(36.1627, -86.7816, 41.8781, -87.6298, UnitKm)
	ba := Haversine(41.8781, -87.6298, 36.1627, -86.7816, UnitKm)
	assert.Equal(t, ab, ba)
	assert.Greater(t, ab, 0.0)
}

func TestHaversine_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(36.1627, -86.7816, 36.1627, -86.7816, UnitKm))
	assert.Equal(t, 0.0, Haversine(0, 0, 0, 0, UnitMiles))
}

func TestHaversine_OneDegreeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is about 111.2 km / 69.1 mi.
	assert.Equal(t, 111.2, Haversine(0, 0, 0, 1, UnitKm))
	assert.Equal(t, 69.1, Haversine(0, 0, 0, 1, UnitMiles))
}

func TestHaversine_RoundsToOneDecimal(t *testing.T) {
	d := Haversine(36.1627, -86.7816, 36.2, -86.7, UnitKm)
	assert.InDelta(t, math.Round(d*10)/10, d, 1e-9)
}
