package studioapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// MemoryService provides long-term memory operations.
type MemoryService struct {
	http *httpClient
}

// List returns a user's memories, newest first. category filters when
// non-empty; limit caps the result when positive.
func (s *MemoryService) List(ctx context.Context, userID string, category MemoryCategory, limit int) ([]Memory, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", string(category))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var result []Memory
	if err := s.http.request(ctx, http.MethodGet, "/api/memory/"+userID, query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Create stores a new memory for a user.
func (s *MemoryService) Create(ctx context.Context, userID, content string, category MemoryCategory) (*Memory, error) {
	body := Memory{Content: content, Category: category}
	var result Memory
	if err := s.http.request(ctx, http.MethodPost, "/api/memory/"+userID, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes one memory.
func (s *MemoryService) Delete(ctx context.Context, userID, memoryID string) error {
	return s.http.request(ctx, http.MethodDelete, "/api/memory/"+userID+"/"+memoryID, nil, nil, nil)
}

// Search finds memories relevant to query.
func (s *MemoryService) Search(ctx context.Context, userID, query string, limit int) ([]Memory, error) {
	params := url.Values{"query": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var result []Memory
	if err := s.http.request(ctx, http.MethodPost, "/api/memory/"+userID+"/search", params, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Context builds the conversation context block from the user's
// memories, ready to inject into a session.
func (s *MemoryService) Context(ctx context.Context, userID string) (string, error) {
	var result struct {
		Context string `json:"context"`
	}
	if err := s.http.request(ctx, http.MethodGet, "/api/memory/"+userID+"/context", nil, nil, &result); err != nil {
		return "", err
	}
	return result.Context, nil
}
