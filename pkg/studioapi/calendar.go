package studioapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CalendarService provides Google Calendar operations through the
// backend's OAuth bridge.
type CalendarService struct {
	http *httpClient
}

// Events lists upcoming events. Zero times mean no bound; maxResults
// caps the list when positive.
func (s *CalendarService) Events(ctx context.Context, start, end time.Time, maxResults int) ([]CalendarEvent, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start_date", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		query.Set("end_date", end.Format(time.RFC3339))
	}
	if maxResults > 0 {
		query.Set("max_results", strconv.Itoa(maxResults))
	}
	var result []CalendarEvent
	if err := s.http.request(ctx, http.MethodGet, "/api/google/calendar/events", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateEvent adds an event to the calendar.
func (s *CalendarService) CreateEvent(ctx context.Context, event CalendarEvent) (*CalendarEvent, error) {
	var result CalendarEvent
	if err := s.http.request(ctx, http.MethodPost, "/api/google/calendar/events", nil, event, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEvent removes an event from the calendar.
func (s *CalendarService) DeleteEvent(ctx context.Context, eventID string) error {
	return s.http.request(ctx, http.MethodDelete, "/api/google/calendar/events/"+eventID, nil, nil, nil)
}
