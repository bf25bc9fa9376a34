package shuttle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

func feedServer(t *testing.T, feed *gtfs.FeedMessage) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	body, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func header() *gtfs.FeedHeader {
	return &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")}
}

func vehicleFeed() *gtfs.FeedMessage {
	return &gtfs.FeedMessage{
		Header: header(),
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("e1"),
				Vehicle: &gtfs.VehiclePosition{
					Trip:      &gtfs.TripDescriptor{RouteId: proto.String("AIRTRAIN-JAM")},
					Vehicle:   &gtfs.VehicleDescriptor{Id: proto.String("car-7"), Label: proto.String("AirTrain Car 7")},
					Position:  &gtfs.Position{Latitude: proto.Float32(40.6369), Longitude: proto.Float32(-73.7658), Bearing: proto.Float32(-90)},
					Timestamp: proto.Uint64(1_800_000_000),
				},
			},
			{
				Id: proto.String("e2"),
				Vehicle: &gtfs.VehiclePosition{
					Position: &gtfs.Position{Latitude: proto.Float32(40.6441), Longitude: proto.Float32(-73.7822)},
				},
			},
			{
				// no position, skipped
				Id:      proto.String("e3"),
				Vehicle: &gtfs.VehiclePosition{Vehicle: &gtfs.VehicleDescriptor{Id: proto.String("ghost")}},
			},
		},
	}
}

func TestVehicles(t *testing.T) {
	srv, hits := feedServer(t, vehicleFeed())

	svc := NewVehicleService(srv.URL, 5*time.Second, time.Minute)
	defer svc.Close()

	vehicles, err := svc.Vehicles(context.Background())
	if err != nil {
		t.Fatalf("Vehicles: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("got %d vehicles, want 2", len(vehicles))
	}

	car := vehicles[0]
	if car.ID != "car-7" || car.Label != "AirTrain Car 7" || car.Route != "AIRTRAIN-JAM" {
		t.Errorf("vehicle = %+v", car)
	}
	if car.Bearing != 270 {
		t.Errorf("bearing = %v, want 270", car.Bearing)
	}
	if car.UpdatedAt.Unix() != 1_800_000_000 {
		t.Errorf("updated = %v", car.UpdatedAt)
	}

	anon := vehicles[1]
	if anon.ID != "e2" || anon.Label != "Shuttle e2" {
		t.Errorf("fallback identity = %+v", anon)
	}

	if _, err := svc.Vehicles(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("feed fetched %d times, want 1 (cached)", hits.Load())
	}
}

func TestWaypoints(t *testing.T) {
	srv, _ := feedServer(t, vehicleFeed())

	svc := NewVehicleService(srv.URL, 5*time.Second, time.Minute)
	defer svc.Close()

	waypoints, err := svc.Waypoints(context.Background())
	if err != nil {
		t.Fatalf("Waypoints: %v", err)
	}
	if len(waypoints) != 2 {
		t.Fatalf("got %d waypoints, want 2", len(waypoints))
	}
	if waypoints[0].ID != "shuttle-car-7" || waypoints[0].Category != wayfinding.CategoryOther {
		t.Errorf("waypoint = %+v", waypoints[0])
	}
}

func TestVehiclesNotConfigured(t *testing.T) {
	svc := NewVehicleService("", time.Second, time.Minute)
	defer svc.Close()

	if svc.Enabled() {
		t.Error("Enabled = true without URL")
	}
	if _, err := svc.Vehicles(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestVehiclesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewVehicleService(srv.URL, time.Second, time.Minute)
	defer svc.Close()

	if _, err := svc.Vehicles(context.Background()); err == nil {
		t.Error("expected error for 502 feed")
	}
}

func TestVehiclesGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0xff, 0xff, 0xff})
	}))
	defer srv.Close()

	svc := NewVehicleService(srv.URL, time.Second, time.Minute)
	defer svc.Close()

	if _, err := svc.Vehicles(context.Background()); err == nil {
		t.Error("expected protobuf parse error")
	}
}

func text(s, lang string) *gtfs.TranslatedString {
	return &gtfs.TranslatedString{
		Translation: []*gtfs.TranslatedString_Translation{
			{Text: proto.String(s), Language: proto.String(lang)},
		},
	}
}

func alertFeed() *gtfs.FeedMessage {
	return &gtfs.FeedMessage{
		Header: header(),
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("a1"),
				Alert: &gtfs.Alert{
					HeaderText:      text("AirTrain suspended", "en"),
					DescriptionText: text("Use shuttle buses", "en"),
					InformedEntity: []*gtfs.EntitySelector{
						{RouteId: proto.String("AIRTRAIN-JAM"), StopId: proto.String("T4")},
						{RouteId: proto.String("AIRTRAIN-JAM"), StopId: proto.String("T5")},
					},
				},
			},
			{
				Id: proto.String("expired"),
				Alert: &gtfs.Alert{
					HeaderText:   text("Old news", "en"),
					ActivePeriod: []*gtfs.TimeRange{{Start: proto.Uint64(100), End: proto.Uint64(200)}},
				},
			},
			{
				Id: proto.String("a2"),
				Alert: &gtfs.Alert{
					HeaderText:     text("Navette retardée", "fr"),
					ActivePeriod:   []*gtfs.TimeRange{{Start: proto.Uint64(100)}},
					InformedEntity: []*gtfs.EntitySelector{{RouteId: proto.String("LOT-C")}},
				},
			},
			{
				Id:    proto.String("headless"),
				Alert: &gtfs.Alert{},
			},
		},
	}
}

func TestAlerts(t *testing.T) {
	srv, _ := feedServer(t, alertFeed())

	svc := NewAlertService(srv.URL, time.Second, time.Minute)
	defer svc.Close()
	svc.now = func() time.Time { return time.Unix(1_000, 0) }

	alerts, err := svc.Alerts(context.Background(), nil)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2: %+v", len(alerts), alerts)
	}

	first := alerts[0]
	if first.ID != "a1" || first.Header != "AirTrain suspended" || first.Description != "Use shuttle buses" {
		t.Errorf("alert = %+v", first)
	}
	if len(first.Routes) != 1 || len(first.Stops) != 2 {
		t.Errorf("routes = %v, stops = %v", first.Routes, first.Stops)
	}
	if alerts[1].Header != "Navette retardée" {
		t.Errorf("fallback translation = %q", alerts[1].Header)
	}

	lotC, err := svc.Alerts(context.Background(), []string{"LOT-C"})
	if err != nil {
		t.Fatal(err)
	}
	if len(lotC) != 1 || lotC[0].ID != "a2" {
		t.Errorf("route filter = %+v", lotC)
	}
}

func TestAlertsNotConfigured(t *testing.T) {
	svc := NewAlertService("", time.Second, time.Minute)
	defer svc.Close()

	if _, err := svc.Alerts(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
