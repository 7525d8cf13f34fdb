package domain

import (
	"net/url"
	"testing"
)

func TestTransitDirectionsURL(t *testing.T) {
	raw := TransitDirectionsURL("西川口", "Shinjuku Station")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := u.Query()
	if q.Get("travelmode") != "transit" || q.Get("api") != "1" {
		t.Fatalf("unexpected query: %s", u.RawQuery)
	}
	if q.Get("origin") != "西川口" {
		t.Fatalf("origin = %q", q.Get("origin"))
	}
	if q.Get("destination") != "Shinjuku Station" {
		t.Fatalf("destination = %q", q.Get("destination"))
	}
}
