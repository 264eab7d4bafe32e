package repos

import (
	"database/sql"
	"errors"
	"math"

	"github.com/jmoiron/sqlx"
)

type ZoneCacheRepo struct{ db *sqlx.DB }

func NewZoneCacheRepo(db *sqlx.DB) *ZoneCacheRepo { return &ZoneCacheRepo{db: db} }

// cacheKey rounds a coordinate to 4 decimals (~11m) so nearby samples of
// the same spot share one cache row.
func cacheKey(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Lookup returns the cached zone for the coordinate pair, or "" when the
// pair has not been resolved before.
func (r *ZoneCacheRepo) Lookup(lat, lon float64) (string, error) {
	var zone string
	err := r.db.Get(&zone, `
		SELECT zone FROM zone_cache WHERE latitude = ? AND longitude = ?
	`, cacheKey(lat), cacheKey(lon))
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return zone, nil
}

func (r *ZoneCacheRepo) Store(lat, lon float64, zone string) error {
	_, err := r.db.Exec(`
		INSERT INTO zone_cache(latitude, longitude, zone, resolved_at)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(latitude, longitude) DO UPDATE SET zone = excluded.zone, resolved_at = CURRENT_TIMESTAMP
	`, cacheKey(lat), cacheKey(lon), zone)
	return err
}
