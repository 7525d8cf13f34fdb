package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Place is a free-text location after it has been resolved by a geocoder.
// ID is the normalized key used for routing and caching; DisplayName is what
// the geocoder calls the place.
type Place struct {
	ID          string
	DisplayName string
	Coordinates Coordinates
}

// Label returns the most readable name for the place.
func (p Place) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}
