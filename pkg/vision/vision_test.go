package vision

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
)

func TestSniffMIMEType(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
		want  string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}, "image/png"},
		{"unknown", []byte{0x00, 0x01}, "application/octet-stream"},
		{"empty", nil, "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniffMIMEType(tt.image); got != tt.want {
				t.Errorf("sniffMIMEType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStudioAnalyzer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vision/analyze" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"description": "青い空と海",
		})
	}))
	defer server.Close()

	analyzer := NewStudioAnalyzer(studioapi.NewClient(studioapi.WithBaseURL(server.URL)))
	desc, err := analyzer.AnalyzeImage(t.Context(), []byte{0xff, 0xd8}, "何が写っていますか")
	if err != nil {
		t.Fatalf("AnalyzeImage() error = %v", err)
	}
	if desc != "青い空と海" {
		t.Errorf("description = %q", desc)
	}
}

func TestStudioAnalyzer_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	analyzer := NewStudioAnalyzer(studioapi.NewClient(studioapi.WithBaseURL(server.URL)))
	if _, err := analyzer.AnalyzeImage(t.Context(), []byte{0xff, 0xd8}, ""); err == nil {
		t.Fatal("AnalyzeImage() succeeded against a failing backend")
	}
}
