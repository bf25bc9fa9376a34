package shuttle

import (
	"context"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/randytsao24/gatefinder/internal/cache"
	"github.com/randytsao24/gatefinder/internal/models"
)

// AlertService fetches and caches ground-transport service alerts
type AlertService struct {
	feedURL string
	client  *http.Client
	cache   *cache.Cache[[]models.ServiceAlert]
	now     func() time.Time
}

// NewAlertService creates a new alert service. An empty feedURL leaves
// the service disabled.
func NewAlertService(feedURL string, timeout, cacheTTL time.Duration) *AlertService {
	return &AlertService{
		feedURL: feedURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]models.ServiceAlert](cacheTTL),
		now:     time.Now,
	}
}

// Enabled reports whether a feed URL is configured
func (s *AlertService) Enabled() bool {
	return s.feedURL != ""
}

// Close releases the service's cache
func (s *AlertService) Close() {
	s.cache.Close()
}

// Alerts returns active alerts, optionally only those naming one of routes
func (s *AlertService) Alerts(ctx context.Context, routes []string) ([]models.ServiceAlert, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	all, err := s.cache.GetOrLoad("all", func() ([]models.ServiceAlert, error) {
		feed, err := fetchFeed(ctx, s.client, s.feedURL)
		if err != nil {
			return nil, err
		}
		return s.parseAlerts(feed), nil
	})
	if err != nil {
		return nil, err
	}

	if len(routes) == 0 {
		return all, nil
	}

	routeSet := make(map[string]bool, len(routes))
	for _, r := range routes {
		routeSet[r] = true
	}

	filtered := []models.ServiceAlert{}
	for _, alert := range all {
		for _, r := range alert.Routes {
			if routeSet[r] {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

func (s *AlertService) parseAlerts(feed *gtfs.FeedMessage) []models.ServiceAlert {
	alerts := []models.ServiceAlert{}
	now := s.now().Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if now >= start && (end == 0 || now < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		var routes, stops []string
		seenRoute := make(map[string]bool)
		seenStop := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if id := ie.GetRouteId(); id != "" && !seenRoute[id] {
				seenRoute[id] = true
				routes = append(routes, id)
			}
			if id := ie.GetStopId(); id != "" && !seenStop[id] {
				seenStop[id] = true
				stops = append(stops, id)
			}
		}

		alerts = append(alerts, models.ServiceAlert{
			ID:          entity.GetId(),
			Routes:      routes,
			Stops:       stops,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return alerts
}

// translatedText picks the English translation, falling back to the first
func translatedText(ts *gtfs.TranslatedString) string {
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
