package location

// Location is a store's geofence reference point. Rows are owned by the
// location-management subsystem; this backend only resolves them for the
// GPS compliance check.
type Location struct {
	StoreID   string
	Name      string
	GPSAlias  string
	Latitude  float64
	Longitude float64
}

// HasCoordinates reports whether the reference point carries a usable,
// non-zero coordinate pair.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}
