package geo

import (
	"fmt"
	"net/url"
)

// URL builders for travel links. Pure string construction, no network
// calls. Google links are always address-based; OpenStreetMap links use
// coordinates when the caller has them, since OSM resolves free-text
// addresses poorly.

const (
	googleDirectionsURL = "https://www.google.com/maps/dir/?api=1"
	googleSearchURL     = "https://www.google.com/maps/search/?api=1"
	osmDirectionsURL    = "https://www.openstreetmap.org/directions"
	osmSearchURL        = "https://www.openstreetmap.org/search"
)

// GoogleDrivingURL returns a Google Maps driving-directions link from a
// free-text origin to the named facility.
func GoogleDrivingURL(origin, name, address string) string {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destinationText(name, address))
	params.Set("travelmode", "driving")
	return googleDirectionsURL + "&" + params.Encode()
}

// GoogleSearchURL returns a Google Maps place-search link for the facility.
func GoogleSearchURL(name, address string) string {
	params := url.Values{}
	params.Set("query", destinationText(name, address))
	return googleSearchURL + "&" + params.Encode()
}

// OSMDrivingURL returns an OpenStreetMap car-routing link between two
// coordinate pairs.
func OSMDrivingURL(fromLat, fromLng, toLat, toLng float64) string {
	params := url.Values{}
	params.Set("engine", "fossgis_osrm_car")
	params.Set("route", fmt.Sprintf("%.6f,%.6f;%.6f,%.6f", fromLat, fromLng, toLat, toLng))
	return osmDirectionsURL + "?" + params.Encode()
}

// OSMMarkerURL returns an OpenStreetMap view centered on a coordinate pair.
func OSMMarkerURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f", lat, lng, lat, lng)
}

// OSMSearchURL returns an OpenStreetMap free-text search link, the
// fallback when no coordinates are known.
func OSMSearchURL(name, address string) string {
	params := url.Values{}
	params.Set("query", destinationText(name, address))
	return osmSearchURL + "?" + params.Encode()
}

func destinationText(name, address string) string {
	if name == "" {
		return address
	}
	if address == "" {
		return name
	}
	return name + ", " + address
}
