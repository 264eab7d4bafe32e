package services

import (
	"context"
	"time"

	"veneya/internal/geocode"
	"veneya/internal/repos"

	"go.uber.org/zap"
)

// UnknownZone is the sentinel label used whenever geocoding yields no
// usable component or fails outright. Sale recording is never blocked by
// geocoding unavailability.
const UnknownZone = "unknown zone"

// Geocoder resolves a coordinate pair into address components. Injected so
// the fallback precedence is testable with scripted responses.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*geocode.Result, error)
}

type ZoneService struct {
	Geo     Geocoder
	Cache   *repos.ZoneCacheRepo
	Timeout time.Duration
	Log     *zap.Logger
}

func NewZoneService(geo Geocoder, cache *repos.ZoneCacheRepo, timeout time.Duration, logger *zap.Logger) *ZoneService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZoneService{Geo: geo, Cache: cache, Timeout: timeout, Log: logger}
}

// Resolve maps a coordinate pair to a zone label. Precedence is
// neighborhood, then locality/city-level area, then the sentinel. It never
// returns an error: every failure path degrades to UnknownZone. Successful
// resolutions are cached so the same spot keeps the same label even when
// the external service wavers.
func (s *ZoneService) Resolve(ctx context.Context, lat, lon float64) string {
	if s.Cache != nil {
		if zone, err := s.Cache.Lookup(lat, lon); err == nil && zone != "" {
			return zone
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	res, err := s.Geo.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		s.Log.Warn("geocoding failed, using sentinel zone",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return UnknownZone
	}

	zone := pickZone(res)
	if zone == UnknownZone {
		return zone
	}

	if s.Cache != nil {
		if err := s.Cache.Store(lat, lon, zone); err != nil {
			s.Log.Warn("zone cache write failed", zap.String("zone", zone), zap.Error(err))
		}
	}
	return zone
}

// Precedence order for address component tags: neighborhood beats
// locality beats city-level administrative area.
var zoneTagPrecedence = []string{"neighborhood", "locality", "administrative_area_level_2"}

// pickZone selects the first component carrying each tag, in precedence
// order.
func pickZone(res *geocode.Result) string {
	if res == nil || res.Status != geocode.StatusOK {
		return UnknownZone
	}
	for _, wanted := range zoneTagPrecedence {
		for _, c := range res.Components {
			if c.LongName == "" {
				continue
			}
			for _, t := range c.Types {
				if t == wanted {
					return c.LongName
				}
			}
		}
	}
	return UnknownZone
}
