package studioapi

import (
	"context"
	"net/http"
	"net/url"
)

// SimulationService provides environment simulator operations. The
// simulator injects geofence and notification events so the voice
// agent can react to them without a real device.
type SimulationService struct {
	http *httpClient
}

// Locations returns the preset locations keyed by their identifier.
func (s *SimulationService) Locations(ctx context.Context) (map[string]Location, error) {
	var result map[string]Location
	if err := s.http.request(ctx, http.MethodGet, "/api/simulation/locations", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TriggerGeofence simulates a geofence crossing.
func (s *SimulationService) TriggerGeofence(ctx context.Context, event GeofenceEvent) (*SimulationResult, error) {
	if event.EventType == "" {
		event.EventType = GeofenceArrival
	}
	var result SimulationResult
	if err := s.http.request(ctx, http.MethodPost, "/api/simulation/geofence/trigger", nil, event, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TriggerPresetGeofence simulates a geofence crossing at a preset
// location.
func (s *SimulationService) TriggerPresetGeofence(ctx context.Context, locationKey, eventType string) (*SimulationResult, error) {
	query := url.Values{}
	if eventType != "" {
		query.Set("event_type", eventType)
	}
	var result SimulationResult
	path := "/api/simulation/geofence/preset/" + locationKey
	if err := s.http.request(ctx, http.MethodPost, path, query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReceiveNotification simulates an incoming push notification. The
// result carries the text the agent should read out.
func (s *SimulationService) ReceiveNotification(ctx context.Context, n Notification) (*SimulationResult, error) {
	var result SimulationResult
	if err := s.http.request(ctx, http.MethodPost, "/api/simulation/notification/receive", nil, n, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
