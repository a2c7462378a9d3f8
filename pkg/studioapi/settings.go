package studioapi

import (
	"context"
	"net/http"
)

// SettingsService provides per-user studio settings operations.
type SettingsService struct {
	http *httpClient
}

// Get fetches the settings for a user. An unknown user gets the backend
// defaults, not an error.
func (s *SettingsService) Get(ctx context.Context, userID string) (*Settings, error) {
	var result Settings
	if err := s.http.request(ctx, http.MethodGet, "/api/settings/"+userID, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the settings for a user, creating them if needed.
func (s *SettingsService) Update(ctx context.Context, userID string, update *SettingsUpdate) (*Settings, error) {
	var result Settings
	if err := s.http.request(ctx, http.MethodPut, "/api/settings/"+userID, nil, update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the settings for a user.
func (s *SettingsService) Delete(ctx context.Context, userID string) error {
	return s.http.request(ctx, http.MethodDelete, "/api/settings/"+userID, nil, nil, nil)
}
