package domain

import "net/url"

const directionsBaseURL = "https://www.google.com/maps/dir/"

// TransitDirectionsURL builds a Google Maps deep link showing public transit
// directions between two free-text locations.
func TransitDirectionsURL(origin, destination string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("travelmode", "transit")
	q.Set("origin", origin)
	q.Set("destination", destination)
	return directionsBaseURL + "?" + q.Encode()
}
