package location

import (
	"context"
	"errors"
)

var ErrLocationNotFound = errors.New("store reference location not found")

type LocationRepository interface {
	// GetStoreReference resolves the geofence reference point for a store,
	// matching the GPS alias first and falling back to the plain name.
	GetStoreReference(ctx context.Context, storeID string) (Location, error)
}
