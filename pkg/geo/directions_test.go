package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleDrivingURL(t *testing.T) {
	url := GoogleDrivingURL("Nashville, TN", "General Hospital", "100 Main St")
	assert.Contains(t, url, "https://www.google.com/maps/dir/?api=1")
	assert.Contains(t, url, "travelmode=driving")
	assert.Contains(t, url, "origin=Nashville%2C+TN")
	assert.Contains(t, url, "General+Hospital%2C+100+Main+St")
}

func TestGoogleSearchURL(t *testing.T) {
	url := GoogleSearchURL("General Hospital", "100 Main St")
	assert.Contains(t, url, "https://www.google.com/maps/search/?api=1")
	assert.Contains(t, url, "query=General+Hospital%2C+100+Main+St")
}

func TestOSMDrivingURL_UsesCoordinates(t *testing.T) {
	url := OSMDrivingURL(36.1627, -86.7816, 36.2, -86.7)
	assert.Contains(t, url, "openstreetmap.org/directions")
	assert.Contains(t, url, "fossgis_osrm_car")
	assert.Contains(t, url, "36.162700")
}

func TestDestinationText_FallsBackWhenPartsMissing(t *testing.T) {
	assert.Equal(t, "100 Main St", destinationText("", "100 Main St"))
	assert.Equal(t, "General Hospital", destinationText("General Hospital", ""))
	assert.Equal(t, "General Hospital, 100 Main St", destinationText("General Hospital", "100 Main St"))
}
