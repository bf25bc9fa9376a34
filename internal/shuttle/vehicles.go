// Package shuttle reads GTFS-realtime feeds for airport ground transport
package shuttle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/randytsao24/gatefinder/internal/cache"
	"github.com/randytsao24/gatefinder/internal/models"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

// ErrNotConfigured is returned when no feed URL was provided
var ErrNotConfigured = errors.New("shuttle feed not configured")

// VehicleService fetches live shuttle positions from a GTFS-realtime
// VehiclePositions feed.
type VehicleService struct {
	feedURL string
	client  *http.Client
	cache   *cache.Cache[[]models.ShuttleVehicle]
}

// NewVehicleService creates a new vehicle service. An empty feedURL
// leaves the service disabled.
func NewVehicleService(feedURL string, timeout, cacheTTL time.Duration) *VehicleService {
	return &VehicleService{
		feedURL: feedURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]models.ShuttleVehicle](cacheTTL),
	}
}

// Enabled reports whether a feed URL is configured
func (s *VehicleService) Enabled() bool {
	return s.feedURL != ""
}

// Close releases the service's cache
func (s *VehicleService) Close() {
	s.cache.Close()
}

// Vehicles returns every vehicle in the feed that reports a position
func (s *VehicleService) Vehicles(ctx context.Context) ([]models.ShuttleVehicle, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	return s.cache.GetOrLoad("vehicles", func() ([]models.ShuttleVehicle, error) {
		feed, err := fetchFeed(ctx, s.client, s.feedURL)
		if err != nil {
			return nil, err
		}
		return parseVehicles(feed), nil
	})
}

// Waypoints returns the vehicles as catalog waypoints, category other
func (s *VehicleService) Waypoints(ctx context.Context) ([]wayfinding.Waypoint, error) {
	vehicles, err := s.Vehicles(ctx)
	if err != nil {
		return nil, err
	}

	waypoints := make([]wayfinding.Waypoint, len(vehicles))
	for i, v := range vehicles {
		waypoints[i] = wayfinding.Waypoint{
			ID:       "shuttle-" + v.ID,
			Name:     v.Label,
			Icon:     "🚌",
			Category: wayfinding.CategoryOther,
			Position: wayfinding.Coordinate{Lat: v.Lat, Lng: v.Lng},
		}
	}
	return waypoints, nil
}

func fetchFeed(ctx context.Context, client *http.Client, url string) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	return feed, nil
}

func parseVehicles(feed *gtfs.FeedMessage) []models.ShuttleVehicle {
	vehicles := []models.ShuttleVehicle{}

	for _, entity := range feed.GetEntity() {
		vp := entity.GetVehicle()
		if vp == nil || vp.GetPosition() == nil {
			continue
		}

		pos := vp.GetPosition()
		desc := vp.GetVehicle()

		id := desc.GetId()
		if id == "" {
			id = entity.GetId()
		}

		label := desc.GetLabel()
		if label == "" {
			label = "Shuttle " + id
		}

		updated := time.Time{}
		if ts := vp.GetTimestamp(); ts > 0 {
			updated = time.Unix(int64(ts), 0).UTC()
		}

		vehicles = append(vehicles, models.ShuttleVehicle{
			ID:        id,
			Label:     label,
			Route:     vp.GetTrip().GetRouteId(),
			Lat:       float64(pos.GetLatitude()),
			Lng:       float64(pos.GetLongitude()),
			Bearing:   wayfinding.NormalizeBearing(float64(pos.GetBearing())),
			UpdatedAt: updated,
		})
	}

	return vehicles
}
