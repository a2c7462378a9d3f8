package studioapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSettingsGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/settings/user-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Settings{
			UserID:       "user-1",
			SystemPrompt: "あなたは親切なAIアシスタントです。",
			VoiceID:      "default",
			Speed:        1.0,
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	settings, err := client.Settings.Get(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.VoiceID != "default" {
		t.Errorf("VoiceID = %q, want default", settings.VoiceID)
	}
	if settings.Speed != 1.0 {
		t.Errorf("Speed = %v, want 1.0", settings.Speed)
	}
}

func TestMemoryList_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "preference" {
			t.Errorf("category = %q, want preference", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		json.NewEncoder(w).Encode([]Memory{
			{ID: "m-1", Content: "コーヒーはブラック派", Category: MemoryPreference},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	memories, err := client.Memory.List(t.Context(), "user-1", MemoryPreference, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(memories) != 1 || memories[0].Category != MemoryPreference {
		t.Errorf("memories = %+v", memories)
	}
}

func TestVisionAnalyze_EncodesImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0x01, 0x02}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ImageBase64 string `json:"image_base64"`
			Prompt      string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if want := base64.StdEncoding.EncodeToString(image); req.ImageBase64 != want {
			t.Errorf("image_base64 = %q, want %q", req.ImageBase64, want)
		}
		if req.Prompt != "何が写っていますか" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(ImageAnalysis{
			Description: "赤いリンゴ",
			Timestamp:   time.Now(),
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	analysis, err := client.Vision.Analyze(t.Context(), image, "何が写っていますか")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Description != "赤いリンゴ" {
		t.Errorf("Description = %q", analysis.Description)
	}
}

func TestErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Settings not found"})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	err := client.Settings.Delete(t.Context(), "nobody")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("IsNotFound() = false, status = %d", apiErr.HTTPStatus)
	}
	if apiErr.Detail != "Settings not found" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func TestErrorMapping_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	err := client.Health(t.Context())
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !apiErr.IsServerError() {
		t.Errorf("IsServerError() = false, status = %d", apiErr.HTTPStatus)
	}
}

func TestRequestIsAttemptedOnce(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Vision.Capture(t.Context(), []byte{1}, ""); err == nil {
		t.Fatal("Capture() succeeded against a failing backend")
	}
	if attempts != 1 {
		t.Errorf("backend saw %d attempts, want exactly 1", attempts)
	}
}
