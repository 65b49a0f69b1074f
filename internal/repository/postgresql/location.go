package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storepulse/storeops-backend-go/internal/domain/location"
	"github.com/storepulse/storeops-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

// GetStoreReference implements location.LocationRepository. The locations
// table is keyed by GPS alias when set, by plain name otherwise.
func (r *locationRepository) GetStoreReference(ctx context.Context, storeID string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT store_id, name, gps_alias, latitude, longitude
		FROM locations
		WHERE gps_alias = $1 OR name = $1
		ORDER BY (gps_alias = $1) DESC
		LIMIT 1
	`

	var loc location.Location
	err := q.QueryRow(ctx, query, storeID).Scan(
		&loc.StoreID, &loc.Name, &loc.GPSAlias, &loc.Latitude, &loc.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get store reference: %w", err)
	}

	return loc, nil
}
